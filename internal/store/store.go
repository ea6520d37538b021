// Package store is a generic table gateway over gorm.
//
// Every statement is built from gorm clause expressions; values never end up
// concatenated into SQL.
package store

import (
	"context"
	"reflect"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrNotFound is returned when an update matched no row.
	ErrNotFound = errors.New("record not found")
	// ErrNoFilter is returned when a mass update or delete has no filter.
	ErrNoFilter = errors.New("refusing to touch every row without a filter")
	// ErrUnknownColumn is returned when an upsert names a column the model lacks.
	ErrUnknownColumn = errors.New("unknown column")
)

// Filter restricts the rows a statement applies to.
type Filter = clause.Expression

// Eq matches rows whose column equals value.
func Eq(column string, value any) Filter {
	return clause.Eq{Column: clause.Column{Name: column}, Value: value}
}

// ByID matches the row with the given primary key.
func ByID(id uint64) Filter {
	return Eq("id", id)
}

// Order sorts a select by one column.
type Order struct {
	Column string
	Desc   bool
}

// Query describes a select. Zero values select everything in store order.
type Query struct {
	Columns []string
	Filters []Filter
	Order   []Order
	Limit   int
}

// Table gives typed access to the table of model T.
type Table[T any] struct {
	db   *gorm.DB
	name string
}

// New returns the gateway for the table of T.
func New[T any](db *gorm.DB) (*Table[T], error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(new(T)); err != nil {
		return nil, errors.Wrap(err, "parse model")
	}

	return &Table[T]{db: db, name: stmt.Schema.Table}, nil
}

// MustNew is New for package level wiring; it panics on a model that gorm can't parse.
func MustNew[T any](db *gorm.DB) *Table[T] {
	t, err := New[T](db)
	if err != nil {
		panic(err)
	}

	return t
}

// Name returns the table name.
func (t *Table[T]) Name() string {
	return t.name
}

func (t *Table[T]) where(ctx context.Context, filters []Filter) *gorm.DB {
	tx := t.db.WithContext(ctx).Model(new(T))
	for _, f := range filters {
		tx = tx.Where(f)
	}

	return tx
}

// Select returns the rows matching q.
func (t *Table[T]) Select(ctx context.Context, q Query) ([]T, error) {
	tx := t.where(ctx, q.Filters)

	if len(q.Columns) > 0 {
		tx = tx.Select(q.Columns)
	}

	for _, o := range q.Order {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Column}, Desc: o.Desc})
	}

	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var out []T
	if err := tx.Find(&out).Error; err != nil {
		return nil, errors.Wrapf(err, "select %s", t.name)
	}

	return out, nil
}

// First returns the first row matching q or ErrNotFound.
func (t *Table[T]) First(ctx context.Context, q Query) (*T, error) {
	q.Limit = 1

	rows, err := t.Select(ctx, q)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, ErrNotFound
	}

	return &rows[0], nil
}

// Insert stores rows. Ids and timestamps assigned by the database are written back.
func (t *Table[T]) Insert(ctx context.Context, rows ...*T) error {
	if len(rows) == 0 {
		return nil
	}

	tx := t.db.WithContext(ctx)

	var err error
	if len(rows) == 1 {
		err = tx.Create(rows[0]).Error
	} else {
		err = tx.Create(rows).Error
	}

	return errors.Wrapf(err, "insert %s", t.name)
}

// Update replaces every column except id and created_at on the rows matching filters.
// It returns ErrNotFound when no row matches.
func (t *Table[T]) Update(ctx context.Context, row *T, filters ...Filter) (int64, error) {
	if len(filters) == 0 {
		return 0, ErrNoFilter
	}

	res := t.where(ctx, filters).Select("*").Omit("id", "created_at").Updates(row)
	if res.Error != nil {
		return 0, errors.Wrapf(res.Error, "update %s", t.name)
	}

	if res.RowsAffected > 0 {
		return res.RowsAffected, nil
	}

	// mysql reports 0 affected rows when nothing changed
	n, err := t.Count(ctx, filters...)
	if err != nil {
		return 0, err
	}

	if n == 0 {
		return 0, ErrNotFound
	}

	return n, nil
}

// Upsert inserts row or, when conflictKey already exists, updates the given columns.
// The stored row is read back into row.
func (t *Table[T]) Upsert(ctx context.Context, row *T, conflictKey string, columns ...string) error {
	stmt := &gorm.Statement{DB: t.db}
	if err := stmt.Parse(row); err != nil {
		return errors.Wrap(err, "parse model")
	}

	field := stmt.Schema.LookUpField(conflictKey)
	if field == nil {
		return errors.Wrapf(ErrUnknownColumn, "%s.%s", t.name, conflictKey)
	}

	key, _ := field.ValueOf(ctx, reflect.ValueOf(row).Elem())

	err := t.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: field.DBName}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(row).Error
	if err != nil {
		return errors.Wrapf(err, "upsert %s", t.name)
	}

	var stored T
	if err = t.db.WithContext(ctx).Where(Eq(field.DBName, key)).First(&stored).Error; err != nil {
		return errors.Wrapf(err, "reload %s", t.name)
	}

	*row = stored

	return nil
}

// Delete removes the rows matching filters and returns how many were removed.
func (t *Table[T]) Delete(ctx context.Context, filters ...Filter) (int64, error) {
	if len(filters) == 0 {
		return 0, ErrNoFilter
	}

	res := t.where(ctx, filters).Delete(new(T))
	if res.Error != nil {
		return 0, errors.Wrapf(res.Error, "delete %s", t.name)
	}

	return res.RowsAffected, nil
}

// Count returns the number of rows matching filters.
func (t *Table[T]) Count(ctx context.Context, filters ...Filter) (int64, error) {
	var n int64
	if err := t.where(ctx, filters).Count(&n).Error; err != nil {
		return 0, errors.Wrapf(err, "count %s", t.name)
	}

	return n, nil
}
