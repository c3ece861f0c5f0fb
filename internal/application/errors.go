package application

import "errors"

var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrSaveFailed       = errors.New("failed to save")
	ErrValidation       = errors.New("validation failed")
	ErrFormClosed       = errors.New("form is not open")
	ErrUnknownField     = errors.New("unknown form field")
	ErrConfirmationOpen = errors.New("a confirmation is already open")
	ErrNoConfirmation   = errors.New("no confirmation is open")
	ErrNoTarget         = errors.New("confirmation requires a target profile")
	ErrAdapterClosed    = errors.New("store adapter closed")
)
