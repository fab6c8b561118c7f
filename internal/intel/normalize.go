package intel

import "strings"

// NormalizeDomain canonicalizes a raw domain string: scheme, userinfo,
// path, and port are stripped and the hostname lowercased. It is
// idempotent and accepts any input; unresolvable hosts surface later as
// ordinary probe errors.
func NormalizeDomain(raw string) string {
	domain := strings.TrimSpace(raw)

	if idx := strings.Index(domain, "://"); idx != -1 {
		domain = domain[idx+3:]
	}
	if idx := strings.IndexAny(domain, "/?#"); idx != -1 {
		domain = domain[:idx]
	}
	if idx := strings.LastIndex(domain, "@"); idx != -1 {
		domain = domain[idx+1:]
	}
	if idx := strings.Index(domain, ":"); idx != -1 {
		domain = domain[:idx]
	}

	domain = strings.TrimSuffix(domain, ".")
	return strings.ToLower(domain)
}
