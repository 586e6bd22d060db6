package ui

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// PlanLimitModalID is the element id datastar patches target.
const PlanLimitModalID = "plan-limit-modal"

type PlanLimitModalProps struct {
	Open       bool
	Title      string
	Message    string
	PricingURL string
	// DismissAction is the endpoint the close button posts to. Empty closes client-side only.
	DismissAction string
}

// PlanLimitModal tells the user a plan limit was reached. A closed modal renders nothing.
func PlanLimitModal(p PlanLimitModalProps) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if !p.Open {
			return nil
		}
		title := p.Title
		if title == "" {
			title = "Limite do plano atingido"
		}
		message := p.Message
		if message == "" {
			message = "Você atingiu o limite do seu plano atual. Faça upgrade para continuar."
		}
		pricing := p.PricingURL
		if pricing == "" {
			pricing = "/pricing"
		}
		dismiss := "el.closest('[role=dialog]').remove()"
		if p.DismissAction != "" {
			dismiss = postAction(p.DismissAction)
		}

		var b strings.Builder
		b.WriteString("<div" + attr("id", PlanLimitModalID) + attr("class", "modal-overlay") +
			attr("role", "dialog") + attr("aria-modal", "true") + attr("aria-labelledby", PlanLimitModalID+"-title") + ">")
		b.WriteString(`<div class="modal-panel">`)
		b.WriteString("<h2" + attr("id", PlanLimitModalID+"-title") + ">" + templ.EscapeString(title) + "</h2>")
		b.WriteString("<p>" + templ.EscapeString(message) + "</p>")
		b.WriteString(`<div class="modal-actions">`)
		b.WriteString("<button" + attr("type", "button") + attr("class", "btn btn-ghost") + attr("data-on-click", dismiss) + ">Fechar</button>")
		b.WriteString("<a" + attr("href", pricing) + attr("class", "btn btn-primary") + ">Ver planos</a>")
		b.WriteString("</div></div></div>")

		_, err := io.WriteString(w, b.String())
		return err
	})
}
