// Package config loads process configuration from environment variables into
// tagged structs.
//
// Parsing is delegated to github.com/caarlos0/env/v11; an optional .env file in
// the working directory is applied once through github.com/joho/godotenv before
// the first parse. Every configuration type is parsed once and served from an
// in-memory cache afterwards, so packages can call Load for their own Config
// struct without coordinating with each other:
//
//	var cfg billing.StripeConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Use ResetCache in tests after changing the environment.
package config
