package utils

import "strings"

// SplitName splits a free-form full name into first and last name. Everything
// after the first word becomes the last name; a single word leaves the last
// name empty.
func SplitName(name string) (firstName, lastName string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
