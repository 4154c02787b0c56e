package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"barbearia/internal/domain"
)

// LoadPricing reads a YAML pricing policy. Environment variables inside the
// file are expanded before parsing.
func LoadPricing(path string) (domain.PricingPolicy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.PricingPolicy{}, fmt.Errorf("read pricing file: %w", err)
	}

	var policy domain.PricingPolicy
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &policy); err != nil {
		return domain.PricingPolicy{}, fmt.Errorf("parse pricing file: %w", err)
	}

	if err := policy.Validate(); err != nil {
		return domain.PricingPolicy{}, fmt.Errorf("pricing validation failed: %w", err)
	}
	return policy.Normalize(), nil
}
