package repository

import (
	"errors"

	"catalog/internal/apperror"

	"gorm.io/gorm"
)

// translate maps constraint violations reported by the store to Conflict.
// conflictMsg is used for unique key violations.
func translate(err error, conflictMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperror.Conflictf(err, conflictMsg)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperror.Conflictf(err, "Operation violates a relation between records")
	}
	return err
}

// take runs q into dest and reports (false, nil) when no row matched.
func take(q *gorm.DB, dest any) (bool, error) {
	err := q.Take(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

// nullable converts a patch value to a column value, clearing the column on "".
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
