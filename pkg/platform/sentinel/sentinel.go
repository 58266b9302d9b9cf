package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and outbound clients return
// these (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: journey record or address candidate does not exist
// - ErrExpired: journey record outlived the session store TTL
// - ErrInvalidState: journey in the wrong state for the requested step
// - ErrUnavailable: keystore or address-data provider temporarily unavailable
//
// For validation errors (bad postcode, oversized field), use pkg/domainerrors.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrExpired      = errors.New("expired")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
