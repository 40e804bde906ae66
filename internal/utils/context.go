// Package utils provides general-purpose helper utilities used across
// different parts of the application. Includes tools for working with
// context, type-safe keys, hashing, HTTP response writing, JWT token
// generation and validation, and other common operations.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the key used to store the authenticated user identifier in
// the context. Used together with GetUserIDFromContext for type-safe
// retrieval.
var UserIDCtxKey = contextKey("userID")

// DeviceIDCtxKey is the key used to store the calling device identifier in
// the context, populated by the sync handler from the request body.
var DeviceIDCtxKey = contextKey("deviceID")

// GetUserIDFromContext retrieves the user identifier from the context.
//
// Returns the user ID of type int64 and an ok flag:
//   - ok == true  — value is found and has the correct int64 type
//   - ok == false — value is missing or has an unexpected type
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}

// GetDeviceIDFromContext retrieves the device identifier from the context.
func GetDeviceIDFromContext(ctx context.Context) (string, bool) {
	deviceID, ok := ctx.Value(DeviceIDCtxKey).(string)
	return deviceID, ok
}
