package infrastructure

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Patch is a typed partial update: Apply overwrites only the fields the
// request actually carried. Entity DTOs implement it with tri-state fields,
// which replaces dynamic field-map mutation with an auditable allow-list.
type Patch[T any] interface {
	Apply(*T)
}

// Repository is the storage contract for one entity type. Absence is a
// valid outcome, not an error: GetByID and Update report it as (nil, nil)
// and Delete as (false, nil); the service layer decides what that means.
type Repository[T any] interface {
	GetByID(ctx context.Context, id uint, relationships ...string) (*T, error)
	GetAll(ctx context.Context, pageNumber, pageSize int, filter string) (*Page[T], error)
	GetAllWithoutPagination(ctx context.Context) ([]*T, error)
	Create(ctx context.Context, rec *T) (*T, error)
	Update(ctx context.Context, id uint, patch Patch[T]) (*T, error)
	Delete(ctx context.Context, id uint) (bool, error)
	CountAll(ctx context.Context) (int64, error)
}

var repoSchemaCache = &sync.Map{}

// GormRepository is the generic GORM-backed implementation. Default
// preloads are applied on every read so public views have their subgraphs
// loaded without a lazy-loading ORM.
type GormRepository[T any] struct {
	DB       *gorm.DB
	preloads []string
}

func NewGormRepository[T any](db *gorm.DB, defaultPreloads ...string) *GormRepository[T] {
	return &GormRepository[T]{DB: db, preloads: defaultPreloads}
}

func (r *GormRepository[T]) GetByID(ctx context.Context, id uint, relationships ...string) (*T, error) {
	q := r.DB.WithContext(ctx)
	for _, p := range r.preloads {
		q = q.Preload(p)
	}
	for _, p := range relationships {
		q = q.Preload(p)
	}
	var rec T
	if err := q.First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, TranslateDBError(err)
	}
	return &rec, nil
}

func (r *GormRepository[T]) GetAll(ctx context.Context, pageNumber, pageSize int, filter string) (*Page[T], error) {
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	where, args := r.filterClause(filter)

	countQ := r.DB.WithContext(ctx).Model(new(T))
	if where != "" {
		countQ = countQ.Where(where, args...)
	}
	var total int64
	if err := countQ.Count(&total).Error; err != nil {
		return nil, TranslateDBError(err)
	}

	findQ := r.DB.WithContext(ctx)
	if where != "" {
		findQ = findQ.Where(where, args...)
	}
	for _, p := range r.preloads {
		findQ = findQ.Preload(p)
	}
	var items []*T
	err := findQ.Offset((pageNumber - 1) * pageSize).Limit(pageSize).Find(&items).Error
	if err != nil {
		return nil, TranslateDBError(err)
	}
	return &Page[T]{
		Items:      items,
		PageNumber: pageNumber,
		PageSize:   pageSize,
		TotalItems: total,
	}, nil
}

func (r *GormRepository[T]) GetAllWithoutPagination(ctx context.Context) ([]*T, error) {
	q := r.DB.WithContext(ctx)
	for _, p := range r.preloads {
		q = q.Preload(p)
	}
	var items []*T
	if err := q.Find(&items).Error; err != nil {
		return nil, TranslateDBError(err)
	}
	return items, nil
}

func (r *GormRepository[T]) Create(ctx context.Context, rec *T) (*T, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(rec).Error
	})
	if err != nil {
		return nil, TranslateDBError(err)
	}
	return r.GetByID(ctx, recordID(rec))
}

func (r *GormRepository[T]) Update(ctx context.Context, id uint, patch Patch[T]) (*T, error) {
	found := true
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec T
		if err := tx.First(&rec, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				found = false
				return nil
			}
			return err
		}
		patch.Apply(&rec)
		return tx.Save(&rec).Error
	})
	if err != nil {
		return nil, TranslateDBError(err)
	}
	if !found {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *GormRepository[T]) Delete(ctx context.Context, id uint) (bool, error) {
	deleted := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec T
		if err := tx.First(&rec, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if err := tx.Delete(&rec).Error; err != nil {
			return err
		}
		deleted = true
		return nil
	})
	if err != nil {
		return false, TranslateDBError(err)
	}
	return deleted, nil
}

func (r *GormRepository[T]) CountAll(ctx context.Context) (int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(new(T)).Count(&total).Error; err != nil {
		return 0, TranslateDBError(err)
	}
	return total, nil
}

// filterClause builds a case-insensitive contains match OR-ed across every
// string-typed column of the entity.
func (r *GormRepository[T]) filterClause(filter string) (string, []any) {
	if filter == "" {
		return "", nil
	}
	sch, err := schema.Parse(new(T), repoSchemaCache, schema.NamingStrategy{})
	if err != nil {
		return "", nil
	}
	pattern := "%" + strings.ToLower(filter) + "%"
	var conds []string
	var args []any
	for _, f := range sch.Fields {
		if f.DBName == "" || f.FieldType.Kind() != reflect.String {
			continue
		}
		conds = append(conds, "LOWER("+f.DBName+") LIKE ?")
		args = append(args, pattern)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return strings.Join(conds, " OR "), args
}

// recordID reads the autoincrement identity off a freshly persisted record.
func recordID(rec any) uint {
	rv := reflect.ValueOf(rec)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return 0
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return 0
	}
	f := rv.FieldByName("ID")
	if !f.IsValid() || !f.CanUint() {
		return 0
	}
	return uint(f.Uint())
}
