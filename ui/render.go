package ui

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/a-h/templ"
)

// Render renders a component to a string.
func Render(ctx context.Context, c templ.Component) (string, error) {
	var sb strings.Builder
	if err := c.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// attr formats name="value" with value escaped.
func attr(name, value string) string {
	return " " + name + `="` + templ.EscapeString(value) + `"`
}

// postAction builds a datastar @post expression with url as a quoted JS string.
func postAction(url string) string {
	quoted, _ := json.Marshal(url)
	return "@post(" + string(quoted) + ")"
}
