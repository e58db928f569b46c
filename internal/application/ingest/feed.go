package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/markethub/backend/internal/domain/shared"
)

// Feed is a supplier-submitted price list document. Categories are
// processed before goods because goods resolve their category through
// the mapping the category section populates.
type Feed struct {
	Categories []FeedCategory `yaml:"categories"`
	Goods      []FeedGood     `yaml:"goods"`
}

// FeedCategory is a category entry keyed by the supplier's local id
type FeedCategory struct {
	ID   int64  `yaml:"id"`
	Name string `yaml:"name"`
}

// FeedGood is a product entry. ID is the supplier-global external key
// used for idempotent upserts; Category references a FeedCategory.ID.
type FeedGood struct {
	ID         int64                  `yaml:"id"`
	Category   int64                  `yaml:"category"`
	Model      string                 `yaml:"model"`
	Name       string                 `yaml:"name"`
	Price      float64                `yaml:"price"`
	PriceRRC   float64                `yaml:"price_rrc"`
	Quantity   int                    `yaml:"quantity"`
	Parameters map[string]interface{} `yaml:"parameters"`
}

// ParseFeed parses and structurally validates a raw YAML feed.
// A malformed document fails fast before any catalog write.
func ParseFeed(raw []byte) (*Feed, error) {
	var feed Feed
	if err := yaml.Unmarshal(raw, &feed); err != nil {
		return nil, shared.NewDomainError("VALIDATION_FAILED", fmt.Sprintf("Feed is not valid YAML: %v", err))
	}
	if err := feed.Validate(); err != nil {
		return nil, err
	}
	return &feed, nil
}

// Validate checks the structural invariants of the feed
func (f *Feed) Validate() error {
	if len(f.Categories) == 0 && len(f.Goods) == 0 {
		return shared.NewDomainError("VALIDATION_FAILED", "Feed contains neither categories nor goods")
	}

	for idx, category := range f.Categories {
		if category.ID <= 0 {
			return shared.NewDomainError("VALIDATION_FAILED", fmt.Sprintf("Category at index %d is missing a positive id", idx))
		}
		if category.Name == "" {
			return shared.NewDomainError("VALIDATION_FAILED", fmt.Sprintf("Category %d is missing a name", category.ID))
		}
	}

	for idx, good := range f.Goods {
		if good.ID <= 0 {
			return shared.NewDomainError("VALIDATION_FAILED", fmt.Sprintf("Good at index %d is missing a positive id", idx))
		}
		if good.Category <= 0 {
			return shared.NewDomainError("VALIDATION_FAILED", fmt.Sprintf("Good %d is missing a category reference", good.ID))
		}
		if good.Name == "" {
			return shared.NewDomainError("VALIDATION_FAILED", fmt.Sprintf("Good %d is missing a name", good.ID))
		}
		if good.Price < 0 || good.PriceRRC < 0 {
			return shared.NewDomainError("VALIDATION_FAILED", fmt.Sprintf("Good %d has a negative price", good.ID))
		}
		if good.Quantity < 0 {
			return shared.NewDomainError("VALIDATION_FAILED", fmt.Sprintf("Good %d has a negative quantity", good.ID))
		}
	}

	return nil
}

// ParameterValues flattens the parameters block to strings. YAML scalars
// arrive as int, float or bool depending on the document; the catalog
// stores them uniformly as text.
func (g *FeedGood) ParameterValues() map[string]string {
	if len(g.Parameters) == 0 {
		return nil
	}
	values := make(map[string]string, len(g.Parameters))
	for name, value := range g.Parameters {
		if name == "" || value == nil {
			continue
		}
		values[name] = fmt.Sprintf("%v", value)
	}
	return values
}

// FeedDigest returns the hex sha256 of a raw feed. It keys the dedup
// check that skips re-uploads of an unchanged document.
func FeedDigest(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
