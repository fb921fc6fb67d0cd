package access

import "testing"

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path       string
		wantFamily Family
		wantLevel  Level
	}{
		{"/", FamilyMarketing, LevelPublic},
		{"/about", FamilyMarketing, LevelPublic},
		{"/pricing/teams", FamilyMarketing, LevelPublic},
		{"/login", FamilyAuth, LevelPublic},
		{"/logout", FamilyAuth, LevelPublic},
		{"/admin/login", FamilyAuth, LevelPublic},
		{"/up", FamilySystem, LevelPublic},
		{"/metrics", FamilySystem, LevelPublic},
		{"/admin", FamilyAdmin, LevelAdmin},
		{"/admin/share/create", FamilyAdmin, LevelAdmin},
		{"/portal", FamilyPortal, LevelAuthenticated},
		{"/portal/acme", FamilyPortal, LevelAuthenticated},
		{"/portal/acme/files", FamilyPortal, LevelAuthenticated},
		{"/s/tok123", FamilyShare, LevelPublic},
		{"/s/tok123/gallery", FamilyShare, LevelPublic},
		{"/playground", FamilyPlayground, LevelPublic},
		{"/playground/hero-banner", FamilyPlayground, LevelPublic},
		// Lookalike prefixes stay marketing.
		{"/portalx", FamilyMarketing, LevelPublic},
		{"/adminx", FamilyMarketing, LevelPublic},
		{"/share/tok", FamilyMarketing, LevelPublic},
	}
	for _, tc := range tests {
		got := Classify(tc.path)
		if got.Family != tc.wantFamily || got.Level != tc.wantLevel {
			t.Fatalf("Classify(%q) = {%s %s}, want {%s %s}", tc.path, got.Family, got.Level, tc.wantFamily, tc.wantLevel)
		}
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/", "/portal/acme", "/s/tok", "/admin/share/create"} {
		first := Classify(path)
		for i := 0; i < 3; i++ {
			if again := Classify(path); again != first {
				t.Fatalf("Classify(%q) changed between calls: %+v then %+v", path, first, again)
			}
		}
	}
}

func TestLevelString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level Level
		want  string
	}{
		{LevelPublic, "public"},
		{LevelAuthenticated, "authenticated"},
		{LevelAdmin, "admin"},
		{Level(42), "unknown"},
	}
	for _, tc := range tests {
		if got := tc.level.String(); got != tc.want {
			t.Fatalf("Level(%d).String() = %q, want %q", tc.level, got, tc.want)
		}
	}
}
