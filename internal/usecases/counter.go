package usecases

import "fmt"

// formatCounter renders a tag counter as a 2-digit zero-padded decimal.
// Counts beyond 99 continue unpadded.
func formatCounter(count int) string {
	return fmt.Sprintf("%02d", count)
}
