package ui_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/saasbilling/ui"
)

func TestLogo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		size  string
		class string
	}{
		{"sm", "h-6 w-auto"},
		{"md", "h-8 w-auto"},
		{"lg", "h-12 w-auto"},
		{"", "h-8 w-auto"},
		{"xl", "h-8 w-auto"},
	}
	for _, tt := range tests {
		t.Run("size "+tt.size, func(t *testing.T) {
			t.Parallel()
			html, err := ui.Render(context.Background(), ui.Logo(ui.LogoProps{Size: tt.size}))
			require.NoError(t, err)
			assert.Equal(t, `<img src="/static/logo.svg" alt="Logo" class="`+tt.class+`">`, html)
		})
	}
}

func TestPlanLimitModal(t *testing.T) {
	t.Parallel()

	t.Run("closed renders nothing", func(t *testing.T) {
		t.Parallel()
		html, err := ui.Render(context.Background(), ui.PlanLimitModal(ui.PlanLimitModalProps{Message: "x"}))
		require.NoError(t, err)
		assert.Empty(t, html)
	})

	t.Run("open", func(t *testing.T) {
		t.Parallel()
		html, err := ui.Render(context.Background(), ui.PlanLimitModal(ui.PlanLimitModalProps{
			Open:          true,
			Message:       "Limit <3> reached",
			PricingURL:    "/pricing?from=modal",
			DismissAction: "/functions/ui/plan-limit/dismiss",
		}))
		require.NoError(t, err)
		assert.Contains(t, html, `id="plan-limit-modal"`)
		assert.Contains(t, html, `role="dialog"`)
		assert.Contains(t, html, "Limit &lt;3&gt; reached")
		assert.Contains(t, html, `href="/pricing?from=modal"`)
		assert.Contains(t, html, `data-on-click="@post(&#34;/functions/ui/plan-limit/dismiss&#34;)"`)
		assert.Contains(t, html, "Ver planos")
	})

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		html, err := ui.Render(context.Background(), ui.PlanLimitModal(ui.PlanLimitModalProps{Open: true}))
		require.NoError(t, err)
		assert.Contains(t, html, "Limite do plano atingido")
		assert.Contains(t, html, `href="/pricing"`)
	})
}

func TestToggleSwitch(t *testing.T) {
	t.Parallel()

	t.Run("off with action", func(t *testing.T) {
		t.Parallel()
		html, err := ui.Render(context.Background(), ui.ToggleSwitch(ui.ToggleProps{ID: "notify", Action: "/toggle/notify"}))
		require.NoError(t, err)
		assert.Contains(t, html, `aria-checked="false"`)
		assert.Contains(t, html, `data-on-click="@post(&#34;/toggle/notify&#34;)"`)
		assert.NotContains(t, html, "disabled")
	})

	t.Run("on", func(t *testing.T) {
		t.Parallel()
		html, err := ui.Render(context.Background(), ui.ToggleSwitch(ui.ToggleProps{ID: "notify", Checked: true, Label: "Notify"}))
		require.NoError(t, err)
		assert.Contains(t, html, `aria-checked="true"`)
		assert.Contains(t, html, "toggle-on")
		assert.Contains(t, html, `aria-label="Notify"`)
	})

	t.Run("loading disables", func(t *testing.T) {
		t.Parallel()
		html, err := ui.Render(context.Background(), ui.ToggleSwitch(ui.ToggleProps{ID: "notify", Loading: true, Action: "/toggle/notify"}))
		require.NoError(t, err)
		assert.Contains(t, html, "disabled")
		assert.Contains(t, html, "toggle-spinner")
		assert.NotContains(t, html, "data-on-click")
	})

	t.Run("action stays inside the string literal", func(t *testing.T) {
		t.Parallel()
		html, err := ui.Render(context.Background(), ui.ToggleSwitch(ui.ToggleProps{ID: "x", Action: `/toggle/x');alert(1);('"`}))
		require.NoError(t, err)
		assert.Contains(t, html, `data-on-click="@post(&#34;/toggle/x&#39;);alert(1);(&#39;\&#34;&#34;)"`)
	})
}

func TestTheme(t *testing.T) {
	t.Parallel()

	vars := ui.DefaultTheme.Variables()
	assert.Contains(t, vars, "--color-primary:#7c3aed;")
	assert.Contains(t, vars, "--radius:0.5rem;")

	html, err := ui.Render(context.Background(), ui.Styles(ui.DefaultTheme))
	require.NoError(t, err)
	assert.Equal(t, "<style>"+vars+"</style>", html)
}
