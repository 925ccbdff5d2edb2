// Package format renders human-readable document numbers.
package format

import (
	"fmt"
)

// Render formats a document number as prefix + zero-padded sequence + suffix.
//
// This function is PURE:
// - No side effects
// - No DB access
// - Fully deterministic
func Render(prefix string, seq int64, paddingDigits int, suffix string) (string, error) {
	if seq <= 0 {
		return "", fmt.Errorf("invalid document sequence: %d", seq)
	}
	if paddingDigits < 0 || paddingDigits > 12 {
		return "", fmt.Errorf("invalid padding digits: %d", paddingDigits)
	}

	return fmt.Sprintf("%s%0*d%s", prefix, paddingDigits, seq, suffix), nil
}
