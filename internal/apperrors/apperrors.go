package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrConflict      = errors.New("conflict with current state")

	ErrInvalidRequest = errors.New("invalid request body")
	ErrValidation     = errors.New("validation failed")

	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token has expired")
	ErrWrongTokenKind = errors.New("wrong token kind")
	ErrBadCredentials = errors.New("incorrect email or password")

	ErrForbidden       = errors.New("access forbidden")
	ErrAccountInactive = errors.New("account is deactivated")
	ErrNotOwner        = errors.New("application belongs to another applicant")
	ErrNotAssigned     = errors.New("reviewer is not assigned to this application")

	ErrNoActiveCycle = errors.New("no active application cycle")
)

type EmailTakenError struct{ Email string }

func (e *EmailTakenError) Error() string {
	return fmt.Sprintf("an account with email '%s' already exists", e.Email)
}
func (e *EmailTakenError) Is(target error) bool { return target == ErrAlreadyExists }

type ApplicationExistsError struct{ ApplicantID string }

func (e *ApplicationExistsError) Error() string {
	return fmt.Sprintf("applicant '%s' already has an application", e.ApplicantID)
}
func (e *ApplicationExistsError) Is(target error) bool { return target == ErrAlreadyExists }

type CycleNameTakenError struct{ Name string }

func (e *CycleNameTakenError) Error() string {
	return fmt.Sprintf("cycle '%s' already exists", e.Name)
}
func (e *CycleNameTakenError) Is(target error) bool { return target == ErrAlreadyExists }

// IllegalTransitionError reports a state-gated operation attempted while
// the application is not in the required lifecycle status.
type IllegalTransitionError struct {
	Op     string
	Status string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("cannot %s an application with status '%s'", e.Op, e.Status)
}
func (e *IllegalTransitionError) Is(target error) bool { return target == ErrConflict }
