// Package common defines shared constants, helpers and sentinel errors used
// across the DramaHub server and client. Callers should use errors.Is to
// match the error values.
package common

import "errors"

var (
	// repository specific errors
	ErrorNotFound = errors.New("not found")

	// service specific errors
	ErrorValidation              = errors.New("validation error")
	ErrorDuplicateEmail          = errors.New("email already registered")
	ErrorUserNotFound            = errors.New("user not found")
	ErrorInvalidCredentials      = errors.New("invalid credentials")
	ErrorStorageUnavailable      = errors.New("storage unavailable")
	ErrorCollaboratorUnavailable = errors.New("collaborator unavailable")

	// configuration errors
	ErrorMissingConfig = errors.New("missing required configuration")
)
