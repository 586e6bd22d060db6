package ui

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/a-h/templ"
)

// Palette holds the brand colors as CSS color values.
type Palette struct {
	Primary    string
	PrimaryFg  string
	Background string
	Foreground string
	Muted      string
	MutedFg    string
	Border     string
	Overlay    string
}

// Theme is the styling configuration shared by every component.
type Theme struct {
	Colors Palette
	Radius string
	Font   string
	// LogoSizes maps a size name to its utility classes.
	LogoSizes map[string]string
}

// DefaultTheme is the product theme.
var DefaultTheme = Theme{
	Colors: Palette{
		Primary:    "#7c3aed",
		PrimaryFg:  "#ffffff",
		Background: "#ffffff",
		Foreground: "#0f172a",
		Muted:      "#f1f5f9",
		MutedFg:    "#64748b",
		Border:     "#e2e8f0",
		Overlay:    "rgb(0 0 0 / 0.5)",
	},
	Radius: "0.5rem",
	Font:   `"Inter", ui-sans-serif, system-ui, sans-serif`,
	LogoSizes: map[string]string{
		"sm": "h-6 w-auto",
		"md": "h-8 w-auto",
		"lg": "h-12 w-auto",
	},
}

// LogoClass returns the classes for size, falling back to "md".
func (t Theme) LogoClass(size string) string {
	if c, ok := t.LogoSizes[size]; ok {
		return c
	}
	return t.LogoSizes["md"]
}

// Variables renders the theme as CSS custom properties on :root.
func (t Theme) Variables() string {
	vars := map[string]string{
		"--color-primary":    t.Colors.Primary,
		"--color-primary-fg": t.Colors.PrimaryFg,
		"--color-bg":         t.Colors.Background,
		"--color-fg":         t.Colors.Foreground,
		"--color-muted":      t.Colors.Muted,
		"--color-muted-fg":   t.Colors.MutedFg,
		"--color-border":     t.Colors.Border,
		"--color-overlay":    t.Colors.Overlay,
		"--radius":           t.Radius,
		"--font-sans":        t.Font,
	}
	keys := make([]string, 0, len(vars))
	for k, v := range vars {
		if v != "" {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	var b strings.Builder
	b.WriteString(":root{")
	for _, k := range keys {
		fmt.Fprintf(&b, "%s:%s;", k, vars[k])
	}
	b.WriteString("}")
	return b.String()
}

// Styles emits the theme variables in a <style> element.
func Styles(t Theme) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		// Values come from code, not user input; only the closing tag needs guarding.
		css := strings.ReplaceAll(t.Variables(), "</", `<\/`)
		_, err := io.WriteString(w, "<style>"+css+"</style>")
		return err
	})
}
