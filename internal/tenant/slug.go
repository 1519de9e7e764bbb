package tenant

import "strings"

// Normalize canonicalizes a slug or subdomain candidate: trim, lowercase,
// every character outside [a-z0-9-] becomes a hyphen, leading and trailing
// hyphens stripped. Every slug comparison in the service must go through
// this one function or lookups silently miss.
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
