package service

import "strings"

func boolPtr(b bool) *bool { return &b }

// trimmed returns the trimmed value of an optional string, "" when nil.
func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// trimmedPtr trims an optional string in place and keeps nil as nil.
func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

// optional turns an optional input into a nullable column value.
func optional(s *string) *string {
	if t := trimmed(s); t != "" {
		return &t
	}
	return nil
}

func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func strPtr(s string) *string { return &s }
