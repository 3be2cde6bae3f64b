package id

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

/**
 * @time: 2025/3/10 22:14
 * @file: uuid.go
 * @description: id util
 */

var mu = &sync.Mutex{}

// GetUUID generates a new UUID
func GetUUID() string {
	mu.Lock()
	defer mu.Unlock()
	return uuid.NewString()
}

// GetUUIDWithoutHyphen generates a new UUID without hyphens
func GetUUIDWithoutHyphen() string {
	mu.Lock()
	defer mu.Unlock()
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
