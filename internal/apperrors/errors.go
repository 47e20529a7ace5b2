package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidState indicates that an operation is not legal for the entity's current state,
// e.g. converting an invoice that is not a pro-forma.
var ErrInvalidState = errors.New("operation not valid for current state")

// ErrAlreadyConverted indicates that a pro-forma was already converted to a final invoice.
// The conversion flag is a one-way latch and never reverts.
var ErrAlreadyConverted = errors.New("proforma already converted to a final invoice")
