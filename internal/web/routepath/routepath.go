// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root   = "/"
	Health = "/up"

	Login  = "/login"
	Logout = "/logout"

	AdminPrefix = "/admin/"
	Admin       = "/admin"
	AdminLogin  = "/admin/login"

	AdminShareCreatePattern  = "/admin/share/create"
	AdminSharePattern        = "/admin/share/{id}"
	AdminShareRevokePattern  = "/admin/share/{id}/revoke"
	AdminShareRestorePattern = "/admin/share/{id}/restore"

	PortalPrefix      = "/portal/"
	Portal            = "/portal"
	PortalPattern     = "/portal/{slug}"
	PortalRestPattern = "/portal/{slug}/{rest...}"

	PlaygroundPrefix      = "/playground/"
	Playground            = "/playground"
	PlaygroundUnitPattern = "/playground/{unit}"

	SharePrefix      = "/s/"
	SharePattern     = "/s/{token}"
	ShareRestPattern = "/s/{token}/{rest...}"

	Metrics = "/metrics"

	// NextQueryKey carries the post-login return path.
	NextQueryKey = "next"
	// BrandQueryKey overrides host-based brand resolution on local hosts.
	BrandQueryKey = "brand"
)

// PortalTenant returns the portal route for a tenant slug.
func PortalTenant(slug string) string {
	return PortalPrefix + escapeSegment(slug)
}

// Share returns the public share route for a token.
func Share(token string) string {
	return SharePrefix + escapeSegment(token)
}

// ShareSub returns the public share route for a token sub-path.
func ShareSub(token string, sub string) string {
	return Share(token) + "/" + escapeSegment(sub)
}

// PlaygroundUnit returns the playground demo route for a unit key.
func PlaygroundUnit(unitKey string) string {
	return PlaygroundPrefix + escapeSegment(unitKey)
}

// AdminShareRevoke returns the revoke action route for a share record.
func AdminShareRevoke(id string) string {
	return AdminPrefix + "share/" + escapeSegment(id) + "/revoke"
}

// AdminShareRestore returns the restore action route for a share record.
func AdminShareRestore(id string) string {
	return AdminPrefix + "share/" + escapeSegment(id) + "/restore"
}

// LoginFor returns the login route with return-path and brand-override state.
// next must be a site-relative path; anything else is dropped.
func LoginFor(loginPath string, next string, brandOverride string) string {
	values := url.Values{}
	if sanitized := SanitizeNextPath(next); sanitized != "" && sanitized != Root {
		values.Set(NextQueryKey, sanitized)
	}
	if override := strings.TrimSpace(brandOverride); override != "" {
		values.Set(BrandQueryKey, override)
	}
	if len(values) == 0 {
		return loginPath
	}
	return loginPath + "?" + values.Encode()
}

// SanitizeNextPath keeps only site-relative return paths, guarding the login
// redirect against open-redirect payloads.
func SanitizeNextPath(raw string) string {
	next := strings.TrimSpace(raw)
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return ""
	}
	parsed, err := url.Parse(next)
	if err != nil || parsed.Scheme != "" || parsed.Host != "" {
		return ""
	}
	if parsed.RawQuery != "" {
		return parsed.Path + "?" + parsed.RawQuery
	}
	return parsed.Path
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
