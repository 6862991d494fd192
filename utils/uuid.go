package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a new unique identifier string, used to tag requests in logs
func GenerateID() string {
	return uuid.New().String()
}
