// Package utils provides utility functions for generating unique identifiers.
package utils

import "github.com/google/uuid"

// GenerateRequestId generates a unique identifier for a single fetch or
// download run. It is attached to every log line of that run.
//
// Returns:
//   - string: A UUID v4 string in the format "xxxxxxxx-xxxx-4xxx-yxxx-xxxxxxxxxxxx"
//
// Example:
//
//	requestId := GenerateRequestId()
//	// Output: "550e8400-e29b-41d4-a716-446655440000"
func GenerateRequestId() string {
	return generateUUID()
}

func generateUUID() string {
	return uuid.New().String()
}
