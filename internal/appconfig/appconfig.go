// Package appconfig holds the declarative application configuration: role
// names, per-role abilities, tenant naming and enabled add-ons. An AppConfig
// is built once at startup and never mutated afterwards.
package appconfig

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrApplicationNameEmpty = errors.New("application name must not be empty")
	ErrTenantNameEmpty      = errors.New("tenant name must not be empty")
	ErrBlankEntry           = errors.New("blank entry")
	ErrUnknownRole          = errors.New("owner or customer role is not a tenant role")
)

// Spec is the raw, decodable form of the application configuration.
type Spec struct {
	OwnerRoles        []string `mapstructure:"owner_roles"        yaml:"owner_roles"`
	CustomerRoles     []string `mapstructure:"customer_roles"     yaml:"customer_roles"`
	TenantRoles       []string `mapstructure:"tenant_roles"       yaml:"tenant_roles"`
	TenantName        string   `mapstructure:"tenant_name"        yaml:"tenant_name"`
	ApplicationName   string   `mapstructure:"application_name"   yaml:"application_name"`
	AddOns            []string `mapstructure:"add_ons"            yaml:"add_ons"`
	OwnerAbilities    []string `mapstructure:"owner_abilities"    yaml:"owner_abilities"`
	CustomerAbilities []string `mapstructure:"customer_abilities" yaml:"customer_abilities"`
	GetQuoteURL       string   `mapstructure:"get_quote_url"      yaml:"get_quote_url"`
}

// DefaultSpec returns the configuration the HR information system ships with.
func DefaultSpec() Spec {
	return Spec{
		OwnerRoles:      []string{"HR Manager"},
		CustomerRoles:   []string{},
		TenantRoles:     []string{"Payroll Administrator", "Employee", "HR Manager"},
		TenantName:      "Company",
		ApplicationName: "HR Information System",
		AddOns:          []string{"file upload", "chat", "notifications", "file"},
		OwnerAbilities: []string{
			"Manage sick leave records",
			"Manage user records",
			"Manage company records",
			"Manage employee records",
		},
		CustomerAbilities: []string{},
		GetQuoteURL:       "https://app.roq.ai/proposal/1043578d-1566-4f20-aec7-7949fbcb4132",
	}
}

// AppConfig is the immutable application configuration. Accessors return copies.
type AppConfig struct {
	spec Spec
}

// New validates spec and freezes it into an AppConfig.
func New(spec Spec) (*AppConfig, error) {
	spec.TenantName = strings.TrimSpace(spec.TenantName)
	spec.ApplicationName = strings.TrimSpace(spec.ApplicationName)

	if spec.ApplicationName == "" {
		return nil, ErrApplicationNameEmpty
	}
	if spec.TenantName == "" {
		return nil, ErrTenantNameEmpty
	}

	lists := map[string][]string{
		"owner_roles":        spec.OwnerRoles,
		"customer_roles":     spec.CustomerRoles,
		"tenant_roles":       spec.TenantRoles,
		"add_ons":            spec.AddOns,
		"owner_abilities":    spec.OwnerAbilities,
		"customer_abilities": spec.CustomerAbilities,
	}
	for name, list := range lists {
		for _, entry := range list {
			if strings.TrimSpace(entry) == "" {
				return nil, fmt.Errorf("%s: %w", name, ErrBlankEntry)
			}
		}
	}

	for _, role := range slices.Concat(spec.OwnerRoles, spec.CustomerRoles) {
		if !slices.Contains(spec.TenantRoles, role) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRole, role)
		}
	}

	return &AppConfig{spec: clone(spec)}, nil
}

// MustDefault returns the shipped configuration; it panics only if DefaultSpec is broken.
func MustDefault() *AppConfig {
	cfg, err := New(DefaultSpec())
	if err != nil {
		panic("default app config: " + err.Error())
	}
	return cfg
}

func (c *AppConfig) OwnerRoles() []string        { return slices.Clone(c.spec.OwnerRoles) }
func (c *AppConfig) CustomerRoles() []string     { return slices.Clone(c.spec.CustomerRoles) }
func (c *AppConfig) TenantRoles() []string       { return slices.Clone(c.spec.TenantRoles) }
func (c *AppConfig) AddOns() []string            { return slices.Clone(c.spec.AddOns) }
func (c *AppConfig) OwnerAbilities() []string    { return slices.Clone(c.spec.OwnerAbilities) }
func (c *AppConfig) CustomerAbilities() []string { return slices.Clone(c.spec.CustomerAbilities) }
func (c *AppConfig) TenantName() string          { return c.spec.TenantName }
func (c *AppConfig) ApplicationName() string     { return c.spec.ApplicationName }
func (c *AppConfig) GetQuoteURL() string         { return c.spec.GetQuoteURL }

// Spec returns a copy of the raw configuration.
func (c *AppConfig) Spec() Spec { return clone(c.spec) }

// HasAddOn reports whether the named add-on is enabled (case-insensitive).
func (c *AppConfig) HasAddOn(name string) bool {
	return slices.ContainsFunc(c.spec.AddOns, func(a string) bool { return strings.EqualFold(a, name) })
}

func (c *AppConfig) IsOwnerRole(role string) bool    { return slices.Contains(c.spec.OwnerRoles, role) }
func (c *AppConfig) IsCustomerRole(role string) bool { return slices.Contains(c.spec.CustomerRoles, role) }
func (c *AppConfig) IsTenantRole(role string) bool   { return slices.Contains(c.spec.TenantRoles, role) }

// AbilitiesFor returns the abilities granted to role. Owner roles receive the
// owner abilities and customer roles the customer abilities; other tenant
// roles receive none.
func (c *AppConfig) AbilitiesFor(role string) []string {
	var out []string
	if c.IsOwnerRole(role) {
		out = append(out, c.spec.OwnerAbilities...)
	}
	if c.IsCustomerRole(role) {
		for _, a := range c.spec.CustomerAbilities {
			if !slices.Contains(out, a) {
				out = append(out, a)
			}
		}
	}
	return out
}

func clone(s Spec) Spec {
	s.OwnerRoles = slices.Clone(s.OwnerRoles)
	s.CustomerRoles = slices.Clone(s.CustomerRoles)
	s.TenantRoles = slices.Clone(s.TenantRoles)
	s.AddOns = slices.Clone(s.AddOns)
	s.OwnerAbilities = slices.Clone(s.OwnerAbilities)
	s.CustomerAbilities = slices.Clone(s.CustomerAbilities)
	return s
}
