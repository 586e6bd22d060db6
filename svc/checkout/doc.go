// Package checkout creates mock checkout sessions.
//
// The price id is classified against an embedded YAML catalog (substring
// match, first rule wins) and turned into a redirect to the mock checkout page
// on the caller's origin. Nothing is sent to the payment provider.
//
// The bearer token, when present, is decoded without verification to prefill
// the email on the checkout page. It is a hint, not an identity.
package checkout
