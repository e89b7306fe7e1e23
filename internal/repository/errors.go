// Package repository defines error values that are reused across
// repositories.  These sentinels let handlers distinguish failure
// scenarios without inspecting error strings.
package repository

import "errors"

// ErrEmailExists is returned when registration collides with an
// existing account.  Handlers should translate this into an HTTP 409
// response.
var ErrEmailExists = errors.New("email already exists")
