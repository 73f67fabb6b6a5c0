package utils

import "errors"

// Common application errors used across repositories and services.
var (
    ErrNotFound          = errors.New("NOT_FOUND")
    ErrPublisherNotFound = errors.New("PUBLISHER_NOT_FOUND")
    ErrDuplicateCode     = errors.New("DUPLICATE_CODE")
    ErrInvalidAmount     = errors.New("INVALID_AMOUNT")
    ErrBackendRead       = errors.New("BACKEND_READ_FAILED")
    ErrBackendWrite      = errors.New("BACKEND_WRITE_FAILED")
    ErrComputation       = errors.New("COMPUTATION_FAILED")
)
