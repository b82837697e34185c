// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides the identifier generators used across the platform.

Two flavours are exposed:

  - New: time-ordered UUIDv7 for persisted rows (proposals), B-tree friendly.
  - Random: 122 bits of randomness (UUIDv4) for opaque, unguessable tokens
    such as payment identifiers.
*/
package uuid

import "github.com/google/uuid"

// # Generators

// New generates a new UUIDv7 string.
func New() string {

	// Create a new version 7 UUID (time-sortable)
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}

	return id.String()
}

// Random generates a new random UUIDv4 string.
func Random() string {
	id, err := uuid.NewRandom()
	if err != nil {
		panic("uuid: failed to generate UUIDv4: " + err.Error())
	}

	return id.String()
}

// Valid reports whether s parses as a UUID of any version.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
