package fun

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// variantChanceSides is the die deciding whether a user's custom response
// fires instead of the normal roll result.
const variantChanceSides = 10

// Variant is a per-user alternate /roll response. When the user rolls, a
// second 1..10 roll at or under Chance replaces the normal result with
// Message.
type Variant struct {
	Chance  int    `yaml:"chance"`
	Message string `yaml:"message"`
}

// VariantTable maps user IDs to their roll variants. The table lives in a
// YAML file so adding or tuning a gag response is a config edit, not a
// code change.
type VariantTable struct {
	Variants map[string]Variant `yaml:"variants"`
}

// LoadVariants reads the variant table from path. A missing file is an
// empty table: custom responses are optional flavor.
func LoadVariants(path string) (*VariantTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &VariantTable{Variants: map[string]Variant{}}, nil
		}
		return nil, fmt.Errorf("failed to read variants file: %w", err)
	}

	var table VariantTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse variants file: %w", err)
	}
	if table.Variants == nil {
		table.Variants = map[string]Variant{}
	}

	for userID, v := range table.Variants {
		if v.Chance < 0 || v.Chance > variantChanceSides {
			return nil, fmt.Errorf("variant for user %s has chance %d outside 0-%d",
				userID, v.Chance, variantChanceSides)
		}
	}

	return &table, nil
}

// Lookup returns the variant for a user, if one is configured.
func (t *VariantTable) Lookup(userID string) (Variant, bool) {
	v, ok := t.Variants[userID]
	return v, ok
}
