package rates

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// StaffRate holds the configured commission fractions for one staff member.
type StaffRate struct {
	Service    float64
	Product    float64
	ExternalID string
}

// Override is an item-name based rate override, consulted before staff rates.
type Override struct {
	Match   string
	Service *float64
	Product *float64
}

// Table is the commission-rate configuration for one run. Read-only after load.
type Table struct {
	defaultRate float64
	staff       map[string]StaffRate
	aliases     map[string]string
	overrides   []Override
}

type fileStaff struct {
	Name        string `yaml:"name"`
	ExternalID  string `yaml:"external_id"`
	ServiceRate any    `yaml:"service_rate"`
	ProductRate any    `yaml:"product_rate"`
}

type fileOverride struct {
	Match       string `yaml:"match"`
	ServiceRate any    `yaml:"service_rate"`
	ProductRate any    `yaml:"product_rate"`
}

type file struct {
	DefaultRate any            `yaml:"default_rate"`
	Staff       []fileStaff    `yaml:"staff"`
	Overrides   []fileOverride `yaml:"overrides"`
}

// Load reads the operator-edited rates file. Rates may be written as a
// fraction, a whole-number percentage or a percent-suffixed string; all are
// normalized to [0,1].
func Load(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("can't read rates file: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Table, error) {
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("can't parse rates file: %w", err)
	}

	t := &Table{
		defaultRate: Normalize(f.DefaultRate),
		staff:       make(map[string]StaffRate, len(f.Staff)),
		aliases:     make(map[string]string, len(f.Staff)),
	}

	for _, s := range f.Staff {
		if s.Name == "" {
			continue
		}
		t.staff[s.Name] = StaffRate{
			Service:    Normalize(s.ServiceRate),
			Product:    Normalize(s.ProductRate),
			ExternalID: s.ExternalID,
		}
		if s.ExternalID != "" {
			t.aliases[s.ExternalID] = s.Name
		}
	}

	for _, o := range f.Overrides {
		if o.Match == "" {
			continue
		}
		override := Override{Match: o.Match}
		if o.ServiceRate != nil {
			rate := Normalize(o.ServiceRate)
			override.Service = &rate
		}
		if o.ProductRate != nil {
			rate := Normalize(o.ProductRate)
			override.Product = &rate
		}
		t.overrides = append(t.overrides, override)
	}

	return t, nil
}

// Empty returns a table with only a default rate, for runs without a file.
func Empty(defaultRate float64) *Table {
	return &Table{
		defaultRate: Normalize(defaultRate),
		staff:       map[string]StaffRate{},
		aliases:     map[string]string{},
	}
}

// AliasName maps an external staff id to a configured display name. The alias
// table always wins over cached names so operators can relabel staff.
func (t *Table) AliasName(externalID string) (string, bool) {
	name, ok := t.aliases[externalID]
	return name, ok
}

// rateStrategy returns a rate for a given item label and staff name, or
// reports that it has no opinion.
type rateStrategy func(label, staffName string) (float64, bool)

func (t *Table) overrideStrategy(product bool) rateStrategy {
	return func(label, _ string) (float64, bool) {
		if label == "" {
			return 0, false
		}
		lower := strings.ToLower(label)
		for _, o := range t.overrides {
			if !strings.Contains(lower, strings.ToLower(o.Match)) {
				continue
			}
			if product && o.Product != nil {
				return *o.Product, true
			}
			if !product && o.Service != nil {
				return *o.Service, true
			}
		}
		return 0, false
	}
}

func (t *Table) staffStrategy(product bool) rateStrategy {
	return func(_, staffName string) (float64, bool) {
		r, ok := t.staff[staffName]
		if !ok {
			return 0, false
		}
		if product {
			return r.Product, true
		}
		return r.Service, true
	}
}

func (t *Table) resolve(label, staffName string, product bool) float64 {
	strategies := []rateStrategy{
		t.overrideStrategy(product),
		t.staffStrategy(product),
	}
	for _, s := range strategies {
		if rate, ok := s(label, staffName); ok {
			return rate
		}
	}
	return t.defaultRate
}

// ServiceRate resolves the service commission rate for an item label and a
// staff display name: item-name override, then staff rate, then default.
func (t *Table) ServiceRate(label, staffName string) float64 {
	return t.resolve(label, staffName, false)
}

// ProductRate resolves the product commission rate.
func (t *Table) ProductRate(label, staffName string) float64 {
	return t.resolve(label, staffName, true)
}

// Normalize coerces a loose-typed rate value to a fraction in [0,1].
// Accepted shapes: 0.4, 40, "40%", "0.4", "", nil.
func Normalize(v any) float64 {
	if v == nil {
		return 0
	}

	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0
		}
		if strings.HasSuffix(s, "%") {
			f, err := cast.ToFloat64E(strings.TrimSpace(strings.TrimSuffix(s, "%")))
			if err != nil {
				return 0
			}
			return clamp(f / 100)
		}
		v = s
	}

	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0
	}
	if f > 1 {
		f /= 100
	}
	return clamp(f)
}

func clamp(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
