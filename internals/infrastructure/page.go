package infrastructure

// Page is one bounded slice of a filtered result set plus its pagination
// metadata. TotalItems always reflects the full filtered count, independent
// of the page cut.
type Page[T any] struct {
	Items      []*T  `json:"items"`
	PageNumber int   `json:"page_number"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
}
