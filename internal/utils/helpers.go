// Package utils provides utility functions and helpers for common operations
// used throughout the application. It includes string manipulation, error
// types, logging setup, and validation wrappers that simplify repeated tasks.
//
// This package follows Go's idioms for error handling and uses Go's standard
// library patterns where appropriate. Functions in this package are designed
// to be simple, self-contained, and have minimal side effects.
package utils

import (
	"fmt"
	"strings"
)

// TruncateString truncates a string to the given maximum length and adds
// ellipsis if necessary. This is useful for display or logging purposes
// where long strings need to be shortened.
//
// Parameters:
//   - s: the string to truncate
//   - maxLen: the maximum length of the result, including the ellipsis
//
// Returns:
//   - the truncated string
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// FormatByteSize formats a byte count as a human-readable string.
//
// Parameters:
//   - size: the number of bytes
//
// Returns:
//   - a formatted string such as "10.0 KiB"
func FormatByteSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}

// Plural returns a string with the number and the plural form of the word if
// necessary. It handles the simple English pluralization case where adding
// 's' is sufficient.
//
// Parameters:
//   - count: the count to determine if singular or plural form is needed
//   - word: the base word in singular form
//
// Returns:
//   - a formatted string with the count and appropriate word form
func Plural(count int, word string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, word)
	}
	return fmt.Sprintf("%d %ss", count, word)
}

// SanitizeFilename returns the final path element of a filename, guarding
// against directory traversal in names echoed back by the backend.
//
// Parameters:
//   - name: the filename to sanitize
//
// Returns:
//   - the base name with any path components removed
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	return name
}
