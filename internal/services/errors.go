// Package services defines the business logic for contact records and the
// visitor counter. This file centralizes common service-level error values so
// that they can be consistently returned by service methods and checked by
// callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler layer.
package services

import "errors"

var (
	// ErrNameRequired is returned when a contact submission or update is
	// missing the required name field.
	ErrNameRequired = errors.New("name is required")

	// ErrEmailRequired is returned when a contact submission or update is
	// missing the required email field.
	ErrEmailRequired = errors.New("email is required")

	// ErrInvalidStatus is returned when a status value is outside the allowed
	// set (pending, contacted, rejected).
	ErrInvalidStatus = errors.New("valid status is required (pending, contacted, rejected)")

	// ErrInvalidID is returned when an identifier does not match the expected
	// 24-character hexadecimal form.
	ErrInvalidID = errors.New("invalid contact ID format")

	// ErrContactNotFound indicates that no contact exists with the requested
	// identifier.
	ErrContactNotFound = errors.New("contact not found")

	// ErrNoUpdatableFields is returned when an update request contains none of
	// the allow-listed mutable fields.
	ErrNoUpdatableFields = errors.New("no updatable fields provided")

	// ErrUnauthorized is returned when a destructive operation is attempted
	// without the correct admin credential.
	ErrUnauthorized = errors.New("unauthorized")
)
