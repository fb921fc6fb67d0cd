// Package templates holds the shared HTML building blocks for web pages.
//
// Components are composed programmatically with templ. Pages are small
// and server-rendered; there is no client framework.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Shell describes the outer HTML document for one page.
type Shell struct {
	Title       string
	Description string
	BrandName   string
	// NavLinks render in the header, label to href.
	NavLinks []NavLink
}

// NavLink is one header navigation entry.
type NavLink struct {
	Label string
	Href  string
}

// Layout wraps body in the shared document shell.
func Layout(shell Shell, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := shell.Title
		if title == "" {
			title = shell.BrandName
		}
		if _, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>%s</title>`,
			templ.EscapeString(title),
		); err != nil {
			return err
		}
		if shell.Description != "" {
			if _, err := fmt.Fprintf(w, `<meta name="description" content="%s">`, templ.EscapeString(shell.Description)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</head><body><header class="site-header"><a class="brand" href="/">`); err != nil {
			return err
		}
		if _, err := io.WriteString(w, templ.EscapeString(shell.BrandName)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</a><nav>`); err != nil {
			return err
		}
		for _, link := range shell.NavLinks {
			safeHref := templ.URL(link.Href)
			if _, err := fmt.Fprintf(w, `<a href="%s">%s</a>`, templ.EscapeString(string(safeHref)), templ.EscapeString(link.Label)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</nav></header><main>`); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

// Heading renders a page heading with an optional subtitle.
func Heading(title string, subtitle string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<h1>%s</h1>`, templ.EscapeString(title)); err != nil {
			return err
		}
		if subtitle == "" {
			return nil
		}
		_, err := fmt.Fprintf(w, `<p class="subtitle">%s</p>`, templ.EscapeString(subtitle))
		return err
	})
}

// Paragraph renders one paragraph of escaped text.
func Paragraph(text string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<p>%s</p>`, templ.EscapeString(text))
		return err
	})
}

// LinkList renders links as an unordered list.
func LinkList(links []NavLink) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<ul class="links">`); err != nil {
			return err
		}
		for _, link := range links {
			safeHref := templ.URL(link.Href)
			if _, err := fmt.Fprintf(w, `<li><a href="%s">%s</a></li>`, templ.EscapeString(string(safeHref)), templ.EscapeString(link.Label)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ul>`)
		return err
	})
}

// Section groups children under an optional section title.
func Section(title string, children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section>`); err != nil {
			return err
		}
		if title != "" {
			if _, err := fmt.Fprintf(w, `<h2>%s</h2>`, templ.EscapeString(title)); err != nil {
				return err
			}
		}
		for _, child := range children {
			if child == nil {
				continue
			}
			if err := child.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</section>`)
		return err
	})
}

// CredentialsForm renders the email/password sign-in form.
func CredentialsForm(action string, next string, errorText string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		safeAction := templ.URL(action)
		if _, err := fmt.Fprintf(w, `<form method="post" action="%s" class="credentials">`, templ.EscapeString(string(safeAction))); err != nil {
			return err
		}
		if errorText != "" {
			if _, err := fmt.Fprintf(w, `<p class="form-error">%s</p>`, templ.EscapeString(errorText)); err != nil {
				return err
			}
		}
		if next != "" {
			if _, err := fmt.Fprintf(w, `<input type="hidden" name="next" value="%s">`, templ.EscapeString(next)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w,
			`<label>Email<input type="email" name="email" required></label>`+
				`<label>Password<input type="password" name="password" required></label>`+
				`<button type="submit">Sign in</button></form>`,
		); err != nil {
			return err
		}
		return nil
	})
}

// Form renders a minimal POST form with hidden fields and a submit label.
func Form(action string, submitLabel string, hidden map[string]string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		safeAction := templ.URL(action)
		if _, err := fmt.Fprintf(w, `<form method="post" action="%s">`, templ.EscapeString(string(safeAction))); err != nil {
			return err
		}
		for name, value := range hidden {
			if _, err := fmt.Fprintf(w, `<input type="hidden" name="%s" value="%s">`, templ.EscapeString(name), templ.EscapeString(value)); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, `<button type="submit">%s</button></form>`, templ.EscapeString(submitLabel))
		return err
	})
}
