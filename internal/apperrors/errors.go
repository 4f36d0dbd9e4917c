package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller is not allowed to act on the requested resource.
var ErrForbidden = errors.New("forbidden")

// ErrRateUnavailable indicates that no exchange rate is on file for a requested
// currency pair. There is no safe default exchange rate, so this must surface
// to the caller as a service failure rather than be papered over with a
// fabricated value.
var ErrRateUnavailable = errors.New("exchange rate unavailable")
