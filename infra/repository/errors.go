package repository

import (
	"errors"

	"github.com/amirasaad/bankaccount/pkg/domain/account"
	"gorm.io/gorm"
)

// MapGormErrorToDomain converts GORM errors to domain errors.
// Traverses the error chain to find GORM errors and maps them to the account
// package sentinels; anything else is returned unchanged.
func MapGormErrorToDomain(err error) error {
	if err == nil {
		return nil
	}

	currentErr := err
	for currentErr != nil {
		switch {
		case errors.Is(currentErr, gorm.ErrDuplicatedKey):
			return account.ErrAccountAlreadyExists
		case errors.Is(currentErr, gorm.ErrRecordNotFound):
			return account.ErrAccountNotFound
		}
		currentErr = errors.Unwrap(currentErr)
	}

	return err
}

// WrapError wraps a GORM operation and automatically maps errors.
//
// Usage:
//
//	err := WrapError(func() error {
//	    return r.db.WithContext(ctx).Create(&model).Error
//	})
func WrapError(op func() error) error {
	return MapGormErrorToDomain(op())
}
