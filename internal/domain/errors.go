// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity or request parameter
	// fails validation. Specific failures wrap it.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyTitle is returned when a task title is empty or blank.
	ErrEmptyTitle = fmt.Errorf("%w: title cannot be empty", ErrValidation)

	// ErrEmptyContent is returned when a task content is empty or blank.
	ErrEmptyContent = fmt.Errorf("%w: content cannot be empty", ErrValidation)

	// ErrInvalidState is returned when a task state is not one of the known
	// state values.
	ErrInvalidState = fmt.Errorf("%w: invalid task state", ErrValidation)

	// ErrInvalidAuthor is returned when a task has no owning user.
	ErrInvalidAuthor = fmt.Errorf("%w: task must have an author", ErrValidation)

	// ErrEmptyName is returned when a user name is empty or blank.
	ErrEmptyName = fmt.Errorf("%w: name cannot be empty", ErrValidation)
)
