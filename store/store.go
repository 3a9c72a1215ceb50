// Package store persists orders and menu items with gorm. Every
// operation touches a single entity; concurrent writers follow last
// write wins.
package store

import (
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not found")

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
