package admin

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"github.com/meridianworks/meridian.studio/internal/storage"
	"github.com/meridianworks/meridian.studio/internal/web/platform/httpx"
	"github.com/meridianworks/meridian.studio/internal/web/platform/pagerender"
	"github.com/meridianworks/meridian.studio/internal/web/routepath"
	"github.com/meridianworks/meridian.studio/internal/web/templates"
)

func (m Module) handleConsole(w http.ResponseWriter, r *http.Request) {
	shares, err := m.shares.ListShareableContent(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	_ = pagerender.Write(w, r, pagerender.Page{
		Title: "Share links",
		Body: templates.Section("",
			templates.Heading("Share links", "Create, revoke, and restore public share links."),
			shareTable(shares),
			templates.Section("New share", createForm(m.units.Keys())),
		),
	})
}

func shareTable(shares []storage.ShareableContent) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(shares) == 0 {
			return templates.Paragraph("No share links yet.").Render(ctx, w)
		}
		if _, err := io.WriteString(w, `<table class="shares"><thead><tr><th>Title</th><th>Link</th><th>Status</th><th></th></tr></thead><tbody>`); err != nil {
			return err
		}
		for _, share := range shares {
			action := templates.Form(routepath.AdminShareRevoke(share.ID), "Revoke", nil)
			if !share.IsActive() {
				action = templates.Form(routepath.AdminShareRestore(share.ID), "Restore", nil)
			}
			if _, err := fmt.Fprintf(w,
				`<tr><td>%s</td><td><a href="%s">%s</a></td><td>%s</td><td>`,
				templ.EscapeString(share.Title),
				templ.EscapeString(routepath.Share(share.Token)),
				templ.EscapeString(share.Token),
				templ.EscapeString(string(share.Visibility)),
			); err != nil {
				return err
			}
			if err := action.Render(ctx, w); err != nil {
				return err
			}
			if _, err := io.WriteString(w, `</td></tr>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table>`)
		return err
	})
}

func createForm(unitKeys []string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<form method="post" action="%s" class="share-create">`, templ.EscapeString(routepath.AdminShareCreatePattern)); err != nil {
			return err
		}
		if _, err := io.WriteString(w,
			`<label>Title<input type="text" name="title" required></label>`+
				`<label>Description<input type="text" name="description"></label>`,
		); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<label>Primary unit<select name="primary_unit">`); err != nil {
			return err
		}
		for _, key := range unitKeys {
			if _, err := fmt.Fprintf(w, `<option value="%s">%s</option>`, templ.EscapeString(key), templ.EscapeString(key)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w,
			`</select></label>`+
				`<label>Sub-routes (name=unit per line)<textarea name="sub_routes"></textarea></label>`+
				`<button type="submit">Create share</button></form>`,
		)
		return err
	})
}
