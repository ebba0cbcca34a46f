package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound           = errors.New("entity not found")
	ErrAlreadyExists      = errors.New("entity already exists")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInvalidRole        = errors.New("unknown role")
	ErrSignatureInvalid   = errors.New("invalid payment signature")
	ErrGateway            = errors.New("payment gateway error")
	ErrDuplicatePayment   = errors.New("payment already recorded")
	ErrSessionNotFound    = errors.New("session not found")
	ErrOperationFailed    = errors.New("operation failed")
	ErrInvalidExecContext = errors.New("invalid database execution context")
	ErrReadDatabaseRow    = errors.New("failed to read database row")
)
