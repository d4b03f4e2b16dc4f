package utils

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

var posterNameCleaner = regexp.MustCompile(`['"\s]+`)

// PosterFilename derives the stored poster file name from a movie title,
// keeping the original upload's extension. Quotes and whitespace collapse
// to underscores so the name is URL safe.
func PosterFilename(title, originalName string) string {
	cleaned := posterNameCleaner.ReplaceAllString(title, "_")
	cleaned = strings.Trim(cleaned, "_")
	return cleaned + filepath.Ext(originalName)
}
