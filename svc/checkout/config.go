package checkout

type Config struct {
	// DefaultOrigin is used when the request carries no success URL.
	DefaultOrigin string `env:"CHECKOUT_DEFAULT_ORIGIN" envDefault:"http://localhost:3000"`
	RedirectPath  string `env:"CHECKOUT_REDIRECT_PATH" envDefault:"/checkout/mock"`
}
