// Package billing keeps local subscription records in sync with Stripe.
//
// A webhook delivery goes through three steps. The Verifier authenticates the
// raw payload against the Stripe-Signature header and turns it into one of the
// Event variants. Service.Process then applies the variant: checkout completion
// creates the customer record on first purchase and inserts the subscription;
// subscription created/updated upserts against an existing customer record
// only; deletion marks the subscription canceled. Any other event type is
// acknowledged untouched.
//
// Writes are not wrapped in a transaction. Two deliveries for the same
// subscription race and the last write wins. An optional EventLog (Redis or
// in-memory) acknowledges replays of an already processed event id.
package billing
