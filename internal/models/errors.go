package models

import (
	"errors"
)

var (
	ErrTemplateNotFound   = errors.New("models: template not found")
	ErrFieldNotFound      = errors.New("models: field not found in template")
	ErrItemNotFound       = errors.New("models: item not found")
	ErrUserNotFound       = errors.New("models: user not found")
	ErrDataSourceNotFound = errors.New("models: data source not found")

	ErrMissingRequiredField  = errors.New("models: required field is missing")
	ErrInvalidFieldValue     = errors.New("models: value does not match field type")
	ErrUnsupportedFieldType  = errors.New("models: unsupported field type")
	ErrInvalidFieldReference = errors.New("models: field does not belong to template")
	ErrInvalidFilterField    = errors.New("models: filter field does not belong to template")
	ErrInvalidPagination     = errors.New("models: page number and page size must be positive")
	ErrInvalidRating         = errors.New("models: rating must be between 0 and 10")

	ErrDuplicateEmail     = errors.New("models: duplicate email")
	ErrInvalidCredentials = errors.New("models: invalid credentials")
	ErrInvalidResetCode   = errors.New("models: invalid or expired reset code")

	ErrStorage = errors.New("models: storage failure")
)
