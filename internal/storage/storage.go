// Package storage persists the PIM entities with gorm.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound = errors.New("record not found")
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 2000
)

// Pageable is a zero-based page request. Sort entries look like "name,desc"
// or "id".
type Pageable struct {
	Page int
	Size int
	Sort []string
}

// Repository reads and writes records of one entity. Only relations listed
// in preloads are loaded and only columns listed in sortable can be sorted on.
type Repository[T any] struct {
	db       *gorm.DB
	sortable map[string]string
	preloads []string
}

// NewRepository maps the sort predicates accepted from clients to columns.
// "id" is always sortable.
func NewRepository[T any](db *gorm.DB, sortable map[string]string, preloads ...string) *Repository[T] {
	columns := map[string]string{"id": "id"}
	for k, v := range sortable {
		columns[k] = v
	}
	return &Repository[T]{
		db:       db,
		sortable: columns,
		preloads: preloads,
	}
}

// WithTx returns a copy of the repository bound to tx.
func (r *Repository[T]) WithTx(tx *gorm.DB) *Repository[T] {
	return &Repository[T]{
		db:       tx,
		sortable: r.sortable,
		preloads: r.preloads,
	}
}

func (r *Repository[T]) DB() *gorm.DB {
	return r.db
}

func (r *Repository[T]) query(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	for _, p := range r.preloads {
		db = db.Preload(p)
	}
	return db
}

// FindPage returns one page of records and the total number of records
// matching where.
func (r *Repository[T]) FindPage(ctx context.Context, p Pageable, where ...Condition) ([]T, int64, error) {
	size := p.Size
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	page := p.Page
	if page < 0 {
		page = 0
	}

	var total int64
	count := r.db.WithContext(ctx).Model(new(T))
	for _, w := range where {
		count = count.Where(w.Query, w.Args...)
	}
	if err := count.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count records - %w", err)
	}

	db := r.query(ctx)
	for _, w := range where {
		db = db.Where(w.Query, w.Args...)
	}
	for _, order := range r.orderBy(p.Sort) {
		db = db.Order(order)
	}

	var items []T
	if err := db.Offset(page * size).Limit(size).Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find records - %w", err)
	}
	return items, total, nil
}

// Condition is one where clause of a query.
type Condition struct {
	Query string
	Args  []interface{}
}

func Where(query string, args ...interface{}) Condition {
	return Condition{Query: query, Args: args}
}

// FindAll returns every record matching where, ordered by id.
func (r *Repository[T]) FindAll(ctx context.Context, where ...Condition) ([]T, error) {
	db := r.query(ctx)
	for _, w := range where {
		db = db.Where(w.Query, w.Args...)
	}

	var items []T
	if err := db.Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repository[T]) orderBy(sort []string) []clause.OrderByColumn {
	var orders []clause.OrderByColumn
	for _, s := range sort {
		predicate, dir, _ := strings.Cut(s, ",")
		column, ok := r.sortable[strings.TrimSpace(predicate)]
		if !ok {
			continue
		}
		orders = append(orders, clause.OrderByColumn{
			Column: clause.Column{Name: column},
			Desc:   strings.EqualFold(strings.TrimSpace(dir), "desc"),
		})
	}
	if len(orders) == 0 {
		orders = append(orders, clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	}
	return orders
}

func (r *Repository[T]) Find(ctx context.Context, id int64) (*T, error) {
	var rec T
	err := r.query(ctx).First(&rec, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *Repository[T]) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts rec. Related records are referenced, never written.
func (r *Repository[T]) Create(ctx context.Context, rec *T) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(rec).Error; err != nil {
		return fmt.Errorf("failed to create record - %w", err)
	}
	return nil
}

// Save writes every column of rec. Related records are referenced, never
// written.
func (r *Repository[T]) Save(ctx context.Context, rec *T) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(rec).Error; err != nil {
		return fmt.Errorf("failed to save record - %w", err)
	}
	return nil
}

func (r *Repository[T]) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(new(T), id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete record - %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
