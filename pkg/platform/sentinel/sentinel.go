package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores, the directory, and the
// identity provider adapter return these (optionally wrapped) so the session
// service can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist in store/directory
// - ErrConflict: entity already exists (duplicate email, friend, driver)
// - ErrExpired: verification code has expired
// - ErrInvalidState: entity in wrong state for requested operation, including
//   malformed persisted payloads
// - ErrUnavailable: identity provider or backing resource unreachable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrExpired      = errors.New("expired")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
