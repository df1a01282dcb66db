// Package fingerprint hashes descriptor contents so changes can be tracked
// across patch runs.
package fingerprint

import (
	"crypto/sha256"
	"fmt"
)

// SHA256 returns the hex SHA-256 fingerprint of data.
func SHA256(data string) string {
	h := sha256.New()
	h.Write([]byte(data))
	return fmt.Sprintf("%x", h.Sum(nil))
}
