package chromosome

import (
	"strconv"
	"strings"
)

// Normalize lower-cases a contig name and strips its `chr` prefix, so that
// `chrX`, `ChrX` and `X` resolve to the same value.
func Normalize(text string) string {
	lowered := strings.ToLower(strings.TrimSpace(text))
	lowered = strings.TrimPrefix(lowered, "chr")
	if lowered == "" {
		return "unknown"
	}
	return lowered
}

func IsValidHumanChromosome(text string) bool {
	normalized := Normalize(text)

	// Check if number can be represented as an int in range 1-22
	if chromNumber, err := strconv.Atoi(normalized); err == nil {
		return chromNumber > 0 && chromNumber < 23
	}

	switch normalized {
	case "x", "y", "m", "mt":
		return true
	}
	return false
}
