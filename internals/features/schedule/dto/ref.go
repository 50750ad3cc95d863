package dto

// Ref is a bare reference to an existing record. Relationship updates carry
// refs, never full payloads.
type Ref struct {
	ID uint `json:"id"`
}
