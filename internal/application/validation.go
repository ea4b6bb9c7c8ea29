package application

import (
	"fmt"
	"strings"

	"powerpages/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts field names to readable words for error messages
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"url":             "URL",
		"rootURL":         "root URL",
		"pageProcessor":   "page processor",
		"processorConfig": "page processor config",
		"syncDir":         "sync directory",
	}
	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidatePageURL checks that a URL is required and representable on disk.
func ValidatePageURL(fieldName, url string) error {
	if err := ValidateRequired(fieldName, url); err != nil {
		return err
	}
	if err := domain.ValidateURL(url); err != nil {
		return &ValidationError{
			Field:   fieldName,
			Message: err.Error(),
			Err:     ErrInvalidURL,
		}
	}
	return nil
}
