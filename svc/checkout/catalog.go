package checkout

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Plan is the product a price id resolves to.
type Plan struct {
	Product  string `yaml:"product"`
	Duration int    `yaml:"duration"`
}

type rule struct {
	Match string `yaml:"match"`
	Plan  `yaml:",inline"`
}

// Catalog classifies price ids into plans by substring match.
type Catalog struct {
	Plans   []rule `yaml:"plans"`
	Default Plan   `yaml:"default"`
}

// ParseCatalog reads a YAML catalog.
func ParseCatalog(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}
	if c.Default.Product == "" || c.Default.Duration <= 0 {
		return Catalog{}, fmt.Errorf("%w: default plan needs a product and a positive duration", ErrInvalidCatalog)
	}
	for i, r := range c.Plans {
		if r.Match == "" || r.Product == "" || r.Duration <= 0 {
			return Catalog{}, fmt.Errorf("%w: plan %d is incomplete", ErrInvalidCatalog, i)
		}
	}
	return c, nil
}

// DefaultCatalog returns the catalog shipped with the binary.
func DefaultCatalog() Catalog {
	c, err := ParseCatalog(defaultCatalog)
	if err != nil {
		panic(err)
	}
	return c
}

// Classify returns the first plan whose match string occurs in priceID.
func (c Catalog) Classify(priceID string) Plan {
	for _, r := range c.Plans {
		if strings.Contains(priceID, r.Match) {
			return r.Plan
		}
	}
	return c.Default
}
