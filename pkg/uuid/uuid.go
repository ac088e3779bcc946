// Copyright (c) 2026 Bnusa. All rights reserved.

/*
Package uuid generates and checks the primary keys of every Bnusa table.

Keys are UUIDv7, so B-tree indexes on id stay append-mostly.
*/
package uuid

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
//
// It panics only if the OS random source is unavailable.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}
	return id.String()
}

// Valid reports whether s parses as a UUID. Path parameters are checked
// before they reach a uuid column so malformed IDs read as "not found".
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
