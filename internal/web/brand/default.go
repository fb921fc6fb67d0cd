package brand

import "github.com/meridianworks/meridian.studio/internal/web/access"

// Brand keys.
const (
	KeyMeridian   = "meridian"
	KeyNorthbeam  = "northbeam"
	KeyFieldnotes = "fieldnotes"
)

// DefaultRegistry returns the registry for the production deployment.
// Meridian is the default brand and the only one carrying the admin
// console; Fieldnotes carries the component playground.
func DefaultRegistry() *Registry {
	r := NewRegistry(KeyMeridian)
	r.Add(Identity{
		Key:           KeyNorthbeam,
		DisplayName:   "Northbeam",
		CanonicalHost: "northbeam.co",
		Families: []access.Family{
			access.FamilyMarketing,
			access.FamilyPortal,
			access.FamilyShare,
			access.FamilyAuth,
			access.FamilySystem,
		},
	}, "northbeam")
	r.Add(Identity{
		Key:           KeyFieldnotes,
		DisplayName:   "Fieldnotes",
		CanonicalHost: "fieldnotes.meridian.studio",
		Families: []access.Family{
			access.FamilyMarketing,
			access.FamilyPlayground,
			access.FamilySystem,
		},
	}, "fieldnotes")
	r.Add(Identity{
		Key:           KeyMeridian,
		DisplayName:   "Meridian Works",
		CanonicalHost: "meridian.studio",
		Families: []access.Family{
			access.FamilyMarketing,
			access.FamilyPortal,
			access.FamilyAdmin,
			access.FamilyShare,
			access.FamilyAuth,
			access.FamilySystem,
		},
	}, "meridian")
	return r
}
