// Package billing mounts the payment functions:
//
//	POST /create-checkout-session  mock checkout redirect for a price id
//	POST /stripe-webhook           signed subscription events from Stripe
//
// Both answer CORS preflight. The webhook body is passed to verification
// byte-for-byte.
package billing
