package config

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Policy holds every number and default the estimator uses. The values are
// illustrative placeholders, not market data.
type Policy struct {
	// Extraction fallbacks
	DefaultUnits     int      `yaml:"default_units"`
	DefaultBrand     string   `yaml:"default_brand"`
	DefaultCondition string   `yaml:"default_condition"`
	DefaultBid       float64  `yaml:"default_bid"`
	DefaultLocation  string   `yaml:"default_location"`
	Brands           []string `yaml:"brands"`
	Conditions       []string `yaml:"conditions"`

	// Lookup fallbacks
	DefaultSoldCount int    `yaml:"default_sold_count"`
	DefaultAvgPrice  int    `yaml:"default_avg_price"`
	SearchQuery      string `yaml:"search_query"` // %s is replaced by the brand

	// Arithmetic
	Markup             float64 `yaml:"markup"`
	FeeRate            float64 `yaml:"fee_rate"`
	PremiumCondition   string  `yaml:"premium_condition"`
	PremiumSellablePct float64 `yaml:"premium_sellable_pct"`
	SellablePct        float64 `yaml:"sellable_pct"`
	MaxBuyMultiplier   float64 `yaml:"max_buy_multiplier"`
	ShipCA             int     `yaml:"ship_ca"`
	ShipWA             int     `yaml:"ship_wa"`
	TrendsScore        int     `yaml:"trends_score"`
}

// DefaultPolicy returns the stock policy.
func DefaultPolicy() Policy {
	return Policy{
		DefaultUnits:     6,
		DefaultBrand:     "sony",
		DefaultCondition: "untested",
		DefaultBid:       150,
		DefaultLocation:  "Garland TX",
		Brands:           []string{"sony", "dewalt", "ryobi", "anker"},
		Conditions:       []string{"grade a", "untested", "shelf pull"},

		DefaultSoldCount: 200,
		DefaultAvgPrice:  180,
		SearchQuery:      "eBay sold %s used Sept 2025 site:ebay.com",

		Markup:             3,
		FeeRate:            0.12,
		PremiumCondition:   "grade a",
		PremiumSellablePct: 90,
		SellablePct:        70,
		MaxBuyMultiplier:   1.5,
		ShipCA:             280,
		ShipWA:             350,
		TrendsScore:        75,
	}
}

// LoadPolicy overlays the YAML file at path on DefaultPolicy. An empty path
// returns the defaults.
func LoadPolicy(path string) (Policy, error) {
	p := DefaultPolicy()
	if path == "" {
		return p, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, eris.Wrapf(err, "policy: read %s", path)
	}
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Policy{}, eris.Wrapf(err, "policy: parse %s", path)
	}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// Validate rejects policies the estimator cannot work with. Extracted values
// are never validated, only the policy itself.
func (p Policy) Validate() error {
	if p.DefaultUnits < 1 {
		return eris.Errorf("policy: default_units must be >= 1, got %d", p.DefaultUnits)
	}
	if len(p.Brands) == 0 || len(p.Conditions) == 0 {
		return eris.New("policy: brands and conditions must not be empty")
	}
	if p.FeeRate < 0 || p.FeeRate >= 1 {
		return eris.Errorf("policy: fee_rate must be in [0,1), got %v", p.FeeRate)
	}
	return nil
}
