package store

import (
	"errors"

	"gorm.io/gorm"
)

// Store is the postgres-backed implementation of the payments, membership
// and users collections.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// first runs q.First and maps "no rows" to (false, nil).
func first(q *gorm.DB, dest interface{}) (bool, error) {
	err := q.First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
