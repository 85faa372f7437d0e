package testutil

import (
	"fmt"

	"github.com/google/uuid"
)

// RandomEmail returns a unique email address for test users.
func RandomEmail() string {
	return fmt.Sprintf("user-%s@example.com", uuid.New().String()[:8])
}
