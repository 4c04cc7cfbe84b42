package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/dramahub/internal/common"
)

// storageError hides a driver error behind common.ErrorStorageUnavailable
// while keeping its text for the logs.
func storageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, common.ErrorStorageUnavailable, err)
}

// collaboratorError makes err match common.ErrorCollaboratorUnavailable.
func collaboratorError(op string, err error) error {
	if errors.Is(err, common.ErrorCollaboratorUnavailable) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %v", op, common.ErrorCollaboratorUnavailable, err)
}

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", common.ErrorValidation, msg)
}
