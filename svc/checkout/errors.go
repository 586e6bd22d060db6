package checkout

import "errors"

var (
	ErrMissingPriceID    = errors.New("Price ID is required")
	ErrInvalidSuccessURL = errors.New("Invalid success URL")
	ErrInvalidCatalog    = errors.New("invalid price catalog")
)
