package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// GenerateID builds a record id from a millisecond timestamp and a random
// suffix, e.g. "prd-m1x2k3l4-9f3a1c2e". Unique within one collection for the
// practical lifetime of a process; not a global identifier.
func GenerateID(prefix string, now time.Time) string {
	timePart := strconv.FormatInt(now.UnixMilli(), 36)

	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		// fallback: time-based entropy
		n := now.UnixNano()
		for i := range buf {
			buf[i] = byte(n >> (8 * i))
		}
	}

	parts := []string{timePart, hex.EncodeToString(buf)}
	if prefix != "" {
		parts = append([]string{prefix}, parts...)
	}
	return strings.Join(parts, "-")
}
