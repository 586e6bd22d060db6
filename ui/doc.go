// Package ui holds the presentational components: the logo, the plan-limit
// modal and the toggle switch, plus the Theme they are styled from.
//
// Components are templ.Component values and carry no business logic beyond
// conditional rendering. Interactive parts use datastar attributes
// (data-on-click with @post) so the server answers with a patched element.
package ui
