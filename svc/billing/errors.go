package billing

import "errors"

var (
	ErrMissingSignature     = errors.New("Missing stripe-signature header")
	ErrInvalidSignature     = errors.New("Webhook signature verification failed")
	ErrMalformedEvent       = errors.New("malformed webhook event")
	ErrMissingUserID        = errors.New("No user_id found in customer or session metadata")
	ErrInvalidUserID        = errors.New("user_id metadata is not a valid UUID")
	ErrMissingCustomer      = errors.New("event carries no customer id")
	ErrCustomerNotFound     = errors.New("Customer record not found")
	ErrSubscriptionExists   = errors.New("subscription record already exists")
	ErrUnknownEvent         = errors.New("unknown event variant")
	ErrNotConfigured        = errors.New("payment provider is not configured")
	ErrRetrieveCustomer     = errors.New("failed to retrieve customer")
	ErrRetrieveSubscription = errors.New("failed to retrieve subscription")
)
