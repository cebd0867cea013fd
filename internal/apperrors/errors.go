package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
// Cross-tenant references are reported as not found, never as forbidden.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates that an attempt was made to create a resource that
// already exists (duplicate account code, reused idempotency key).
var ErrConflict = errors.New("resource already exists")

// ErrOverdraft indicates that a posting would drive an account past its
// negative-balance policy. Unlike ErrValidation this depends on current
// ledger state, so callers may retry after re-reading balances.
var ErrOverdraft = errors.New("overdraft not permitted")

// ErrInternal indicates a storage or infrastructure failure. Safe to retry
// with the same idempotency key.
var ErrInternal = errors.New("internal error")
