// Package common defines shared constants and sentinel errors used across
// IdeaFlow components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrSchemaVersion = errors.New("unsupported schema version")

	// Session / registry errors.
	ErrNotSignedIn        = errors.New("not signed in")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Capture errors.
	ErrEmptyContent = errors.New("empty content")

	// Entitlement and precondition refusals. These carry no state change;
	// the surface turns them into a user-facing message.
	ErrPlanRequired   = errors.New("plan upgrade required")
	ErrAssetMissing   = errors.New("required asset missing")
	ErrDeployInFlight = errors.New("deployment already in progress")
)
