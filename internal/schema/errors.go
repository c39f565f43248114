package schema

import "errors"

// Shape and registry errors.
var (
	// ErrSchemaViolation is returned when a value is missing a required field
	// or a field does not conform to its declared type.
	ErrSchemaViolation = errors.New("schema violation")

	// ErrDescriptorInvalid is returned when a capability descriptor is
	// malformed (empty name, bad shape).
	ErrDescriptorInvalid = errors.New("invalid capability descriptor")

	// ErrAlreadyRegistered is returned when registering a duplicate name.
	ErrAlreadyRegistered = errors.New("capability already registered")

	// ErrNotRegistered is returned when looking up an unknown capability.
	ErrNotRegistered = errors.New("capability not registered")

	// ErrRegistryFrozen is returned when registering after Freeze.
	ErrRegistryFrozen = errors.New("registry is frozen")
)
