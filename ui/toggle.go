package ui

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

type ToggleProps struct {
	ID      string
	Label   string
	Checked bool
	// Loading shows a spinner over the switch and disables it.
	Loading bool
	// Action is posted to on click; the server answers with the new switch.
	Action string
}

// ToggleSwitch renders a binary switch driven by datastar.
func ToggleSwitch(p ToggleProps) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		checked := "false"
		class := "toggle"
		if p.Checked {
			checked = "true"
			class += " toggle-on"
		}
		if p.Loading {
			class += " toggle-loading"
		}

		var b strings.Builder
		b.WriteString("<button" + attr("id", p.ID) + attr("type", "button") + attr("role", "switch") +
			attr("aria-checked", checked) + attr("class", class))
		if p.Label != "" {
			b.WriteString(attr("aria-label", p.Label))
		}
		if p.Loading {
			b.WriteString(` disabled aria-busy="true"`)
		} else if p.Action != "" {
			b.WriteString(attr("data-on-click", postAction(p.Action)))
		}
		b.WriteString(">")
		b.WriteString(`<span class="toggle-thumb"></span>`)
		if p.Loading {
			b.WriteString(`<span class="toggle-spinner" aria-hidden="true"></span>`)
		}
		b.WriteString("</button>")

		_, err := io.WriteString(w, b.String())
		return err
	})
}
