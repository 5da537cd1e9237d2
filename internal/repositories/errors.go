package repositories

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrRevisionConflict = errors.New("profile revision conflict")
)

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
