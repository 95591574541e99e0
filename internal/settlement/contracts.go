package settlement

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Contract is a named PPA preset: the discount and optional volume agreed
// with a counterparty, against a chosen reference price index. Presets live
// in YAML files so settlement requests can reference them by name instead
// of repeating terms.
type Contract struct {
	Name           string           `json:"name"`
	Counterparty   string           `json:"counterparty,omitempty"`
	PriceType      string           `json:"price_type"`
	DiscountPerMWh decimal.Decimal  `json:"discount_per_mwh"`
	VolumeMWh      *decimal.Decimal `json:"volume_mwh,omitempty"`
}

// contractYAML is the file-side shape. Monetary terms decode as strings so
// "3.50" survives exactly; yaml.v3 cannot decode scalars into
// decimal.Decimal directly.
type contractYAML struct {
	Name           string `yaml:"name"`
	Counterparty   string `yaml:"counterparty"`
	PriceType      string `yaml:"price_type"`
	DiscountPerMWh string `yaml:"discount_per_mwh"`
	VolumeMWh      string `yaml:"volume_mwh"`
}

type contractsFile struct {
	Contracts []contractYAML `yaml:"contracts"`
}

func (c contractYAML) toContract() (Contract, error) {
	out := Contract{
		Name:         c.Name,
		Counterparty: c.Counterparty,
		PriceType:    c.PriceType,
	}
	if c.Name == "" {
		return Contract{}, fmt.Errorf("contract without a name")
	}
	if c.DiscountPerMWh != "" {
		d, err := decimal.NewFromString(c.DiscountPerMWh)
		if err != nil {
			return Contract{}, fmt.Errorf("contract %s: bad discount_per_mwh %q", c.Name, c.DiscountPerMWh)
		}
		out.DiscountPerMWh = d
	}
	if c.VolumeMWh != "" {
		v, err := decimal.NewFromString(c.VolumeMWh)
		if err != nil {
			return Contract{}, fmt.Errorf("contract %s: bad volume_mwh %q", c.Name, c.VolumeMWh)
		}
		out.VolumeMWh = &v
	}
	return out, nil
}

// LoadContracts reads every *.yaml file in dir and merges their contract
// lists, sorted by name. A missing directory is an empty book, not an
// error: presets are optional.
func LoadContracts(dir string) ([]Contract, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var out []Contract
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".yaml" {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		var f contractsFile
		if err := yaml.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", e.Name(), err)
		}
		for _, cy := range f.Contracts {
			c, err := cy.toContract()
			if err != nil {
				return nil, fmt.Errorf("%s: %w", e.Name(), err)
			}
			out = append(out, c)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// contractByName indexes contracts for request-time lookup.
func contractByName(contracts []Contract) map[string]Contract {
	idx := make(map[string]Contract, len(contracts))
	for _, c := range contracts {
		idx[c.Name] = c
	}
	return idx
}
