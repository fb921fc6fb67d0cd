package units

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/meridianworks/meridian.studio/internal/web/templates"
)

// DefaultRegistry returns the registry with all built-in units.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(heroBanner())
	r.Register(projectGallery())
	r.Register(contactCard())
	r.Register(documentList())
	r.Register(cargowatchDashboard())
	return r
}

func heroBanner() Unit {
	return Unit{
		Key:  "hero-banner",
		Name: "Hero banner",
		Build: func(c Context) templ.Component {
			return templates.Section("",
				templates.Heading(c.Title, c.Description),
			)
		},
	}
}

func projectGallery() Unit {
	return Unit{
		Key:  "project-gallery",
		Name: "Project gallery",
		Build: func(c Context) templ.Component {
			return templates.Section(c.Title,
				templates.Paragraph(c.Description),
				gridPlaceholder("gallery", 6),
			)
		},
	}
}

func contactCard() Unit {
	return Unit{
		Key:  "contact-card",
		Name: "Contact card",
		Build: func(c Context) templ.Component {
			return templates.Section(c.Title,
				templates.Paragraph(c.Description),
				templates.LinkList([]templates.NavLink{
					{Label: "Email the studio", Href: "mailto:hello@meridian.studio"},
				}),
			)
		},
	}
}

func documentList() Unit {
	return Unit{
		Key:  "document-list",
		Name: "Document list",
		Build: func(c Context) templ.Component {
			return templates.Section(c.Title,
				templates.Paragraph(c.Description),
				gridPlaceholder("documents", 3),
			)
		},
	}
}

// cargowatchDashboard is the embedded status board for the Cargowatch
// engagement. It stays registered while the engagement is live.
func cargowatchDashboard() Unit {
	return Unit{
		Key:  "cargowatch-dashboard",
		Name: "Cargowatch dashboard",
		Build: func(c Context) templ.Component {
			return templates.Section(c.Title,
				templates.Paragraph(c.Description),
				gridPlaceholder("dashboard", 4),
			)
		},
	}
}

// gridPlaceholder renders an n-cell grid shell for units whose assets
// load client-side.
func gridPlaceholder(kind string, cells int) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<div class="grid grid-%s">`, templ.EscapeString(kind)); err != nil {
			return err
		}
		for i := 0; i < cells; i++ {
			if _, err := io.WriteString(w, `<div class="cell"></div>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}
