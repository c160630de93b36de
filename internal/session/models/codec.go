package models

import (
	"encoding/json"
	"fmt"

	"cabinet/pkg/platform/sentinel"
)

// EncodeProfile and DecodeProfile are the single serialization boundary for
// profiles. Every store persists through them so date fields round-trip as
// RFC 3339 strings and malformed payloads are caught in one place.

func EncodeProfile(p *UserProfile) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	return data, nil
}

// DecodeProfile parses a persisted profile and validates its minimal shape.
// A payload that cannot be parsed, or that lacks id, email, or name, yields
// sentinel.ErrInvalidState so callers clear storage and start logged out.
func DecodeProfile(data []byte) (*UserProfile, error) {
	var p UserProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode profile: %w: %w", sentinel.ErrInvalidState, err)
	}
	if err := validateShape(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func validateShape(p *UserProfile) error {
	if p.ID == "" || p.Email == "" || p.Name == "" {
		return fmt.Errorf("profile missing id, email, or name: %w", sentinel.ErrInvalidState)
	}
	return nil
}
