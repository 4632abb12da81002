package domain

import "strings"

// NormalizeHumanName trims leading/trailing whitespace and collapses internal
// whitespace runs. It is applied to first and last names at registration.
func NormalizeHumanName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
