package id

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var reID32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

// NewID32 returns exactly 32 lowercase hex characters: a random (v4) UUID without separators.
// Used for request ids and opaque test tokens.
func NewID32() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// IsID32 reports whether s has the NewID32 shape.
func IsID32(s string) bool { return reID32.MatchString(s) }
