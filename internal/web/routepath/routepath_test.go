package routepath

import "testing"

func TestPortalTenantEscapesSlug(t *testing.T) {
	t.Parallel()

	if got := PortalTenant("acme"); got != "/portal/acme" {
		t.Fatalf("PortalTenant = %q, want %q", got, "/portal/acme")
	}
	if got := PortalTenant("a b/c"); got != "/portal/a%20b%2Fc" {
		t.Fatalf("PortalTenant = %q, want %q", got, "/portal/a%20b%2Fc")
	}
}

func TestShareRoutes(t *testing.T) {
	t.Parallel()

	if got := Share("tok123"); got != "/s/tok123" {
		t.Fatalf("Share = %q, want %q", got, "/s/tok123")
	}
	if got := ShareSub("tok123", "gallery"); got != "/s/tok123/gallery" {
		t.Fatalf("ShareSub = %q, want %q", got, "/s/tok123/gallery")
	}
}

func TestLoginFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		login    string
		next     string
		override string
		want     string
	}{
		{"bare", Login, "", "", "/login"},
		{"next", Login, "/portal/acme", "", "/login?next=%2Fportal%2Facme"},
		{"root next dropped", Login, "/", "", "/login"},
		{"external next dropped", Login, "https://evil.test/x", "", "/login"},
		{"protocol-relative next dropped", Login, "//evil.test/x", "", "/login"},
		{"override kept", AdminLogin, "", "northbeam", "/admin/login?brand=northbeam"},
		{"both", Login, "/portal/acme", "fieldnotes", "/login?brand=fieldnotes&next=%2Fportal%2Facme"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := LoginFor(tc.login, tc.next, tc.override); got != tc.want {
				t.Fatalf("LoginFor(%q, %q, %q) = %q, want %q", tc.login, tc.next, tc.override, got, tc.want)
			}
		})
	}
}

func TestSanitizeNextPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
	}{
		{"/portal/acme", "/portal/acme"},
		{"/s/tok?x=1", "/s/tok?x=1"},
		{"", ""},
		{"portal/acme", ""},
		{"//evil.test", ""},
		{"https://evil.test/a", ""},
		{"  /admin  ", "/admin"},
	}
	for _, tc := range tests {
		if got := SanitizeNextPath(tc.raw); got != tc.want {
			t.Fatalf("SanitizeNextPath(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}
