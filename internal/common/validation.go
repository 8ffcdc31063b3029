package common

import (
	"fmt"
	"slices"
	"strings"
)

// ValidateOutputFormat validates format against configured supported formats
func ValidateOutputFormat(format string, supportedFormats []string) error {
	if len(supportedFormats) == 0 {
		return nil // No restrictions configured
	}

	if slices.Contains(supportedFormats, format) {
		return nil
	}

	return fmt.Errorf("unsupported output format '%s'. Supported formats: %v",
		format, supportedFormats)
}

// ValidateTargetRole validates a role name against the reference table's
// known roles, case-insensitively. An empty role is valid and means "let the
// classifier decide".
func ValidateTargetRole(role string, knownRoles []string) error {
	if role == "" {
		return nil
	}
	for _, known := range knownRoles {
		if strings.EqualFold(known, role) {
			return nil
		}
	}
	return fmt.Errorf("unknown target role '%s'. Known roles: %v", role, knownRoles)
}

// GetSupportedFormats returns the list of supported formats
func GetSupportedFormats(supportedFormats []string) []string {
	return supportedFormats
}
