package postgres

import "errors"

var (
	ErrNotOwner         = errors.New("record is not owned by this user")
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)
