// Package store implements generic data access parameterized by table name:
// find, insert, update, delete and existence checks, with every value passed
// as a bound parameter. Column names come from service-declared rule tables,
// never from client input.
package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for health checks.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn against a store bound to a single transaction.
func (s *Store) Transaction(fn func(tx *Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// FindByID fetches a single row by primary key.
func (s *Store) FindByID(table string, id uint) (map[string]any, error) {
	row := map[string]any{}
	err := s.db.Table(table).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// FindAll fetches every row matching the equality filters, ordered by id.
func (s *Store) FindAll(table string, filters map[string]any) ([]map[string]any, error) {
	rows := []map[string]any{}
	tx := s.db.Table(table)
	if len(filters) > 0 {
		tx = tx.Where(filters)
	}
	if err := tx.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Insert adds a row and returns the assigned id. The id normally comes
// straight from the store via RETURNING; the most-recent-matching-row lookup
// below is a last-resort fallback for drivers that cannot report it.
func (s *Store) Insert(table string, data map[string]any) (uint, error) {
	now := time.Now().UTC()
	row := make(map[string]any, len(data)+2)
	for k, v := range data {
		row[k] = v
	}
	row["created_at"] = now
	row["updated_at"] = now

	cols := sortedColumns(row)
	placeholders := make([]string, len(cols))
	values := make([]any, len(cols))
	for i, col := range cols {
		placeholders[i] = "?"
		values[i] = row[col]
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))

	var id uint
	if err := s.db.Raw(query, values...).Scan(&id).Error; err != nil {
		return 0, err
	}
	if id == 0 {
		return s.lastInsertedID(table, data)
	}
	return id, nil
}

// lastInsertedID finds the most recent row matching the inserted values.
// Heuristic: concurrent identical inserts can make it return a sibling's id.
func (s *Store) lastInsertedID(table string, data map[string]any) (uint, error) {
	tx := s.db.Table(table).Select("id").Order("id DESC").Limit(1)
	if len(data) > 0 {
		tx = tx.Where(data)
	}
	var id uint
	err := tx.Scan(&id).Error
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, ErrNotFound
	}
	return id, nil
}

// Update applies the given columns to the row with the given id, always
// stamping updated_at. Returns false when no row was affected.
func (s *Store) Update(table string, id uint, data map[string]any) (bool, error) {
	row := make(map[string]any, len(data)+1)
	for k, v := range data {
		row[k] = v
	}
	row["updated_at"] = time.Now().UTC()

	result := s.db.Table(table).Where("id = ?", id).Updates(row)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete removes the row by id. Returns false when no row was affected.
func (s *Store) Delete(table string, id uint) (bool, error) {
	result := s.db.Exec(fmt.Sprintf("DELETE FROM %s WHERE id = ?", table), id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Exists reports whether a row with the given id exists.
func (s *Store) Exists(table string, id uint) (bool, error) {
	var count int64
	if err := s.db.Table(table).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Query runs a raw parameterized query, for reads the generic helpers cannot
// express (joins).
func (s *Store) Query(query string, args ...any) ([]map[string]any, error) {
	rows := []map[string]any{}
	if err := s.db.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func sortedColumns(row map[string]any) []string {
	cols := make([]string, 0, len(row))
	for col := range row {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}
