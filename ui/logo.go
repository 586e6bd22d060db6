package ui

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const (
	LogoSrc = "/static/logo.svg"
	LogoAlt = "Logo"
)

type LogoProps struct {
	// Size is sm, md or lg. Anything else renders as md.
	Size string
	// Class is appended to the size classes.
	Class string
}

func Logo(p LogoProps) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		class := DefaultTheme.LogoClass(p.Size)
		if p.Class != "" {
			class += " " + p.Class
		}
		_, err := io.WriteString(w, "<img"+attr("src", LogoSrc)+attr("alt", LogoAlt)+attr("class", class)+">")
		return err
	})
}
