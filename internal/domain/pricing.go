package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// PricingPolicy maps service names to fixed prices and defines how each price
// is split between the barber and the shop.
type PricingPolicy struct {
	DefaultPrice float64            `yaml:"default_price" json:"default_price"`
	StaffShare   float64            `yaml:"staff_share" json:"staff_share"`
	Services     map[string]float64 `yaml:"services" json:"services"`
}

// DefaultPricingPolicy is used when no pricing file is configured.
func DefaultPricingPolicy() PricingPolicy {
	return PricingPolicy{
		DefaultPrice: 30,
		StaffShare:   0.8,
		Services: map[string]float64{
			"corte":         35,
			"barba":         25,
			"corte e barba": 50,
			"sobrancelha":   15,
			"pezinho":       10,
		},
	}
}

// Normalize lower-cases and trims service keys so lookups are case-insensitive.
func (p PricingPolicy) Normalize() PricingPolicy {
	services := make(map[string]float64, len(p.Services))
	for name, price := range p.Services {
		services[normalizeService(name)] = price
	}
	p.Services = services
	return p
}

func (p PricingPolicy) Validate() error {
	if p.DefaultPrice < 0 {
		return errors.New("default_price must be >= 0")
	}
	if p.StaffShare < 0 || p.StaffShare > 1 {
		return fmt.Errorf("staff_share must be within [0,1], got %v", p.StaffShare)
	}
	for name, price := range p.Services {
		if strings.TrimSpace(name) == "" {
			return errors.New("service name must not be empty")
		}
		if price < 0 {
			return fmt.Errorf("price of %q must be >= 0", name)
		}
	}
	return nil
}

// Price returns the fixed price of a service, or DefaultPrice when unknown.
// The policy must have been through Normalize.
func (p PricingPolicy) Price(service string) float64 {
	if price, ok := p.Services[normalizeService(service)]; ok {
		return price
	}
	return p.DefaultPrice
}

// Split divides price into the barber share and the shop commission.
// Both parts are rounded to cents and always add up to price.
func (p PricingPolicy) Split(price float64) (staff, shop float64) {
	staff = RoundCents(price * p.StaffShare)
	shop = RoundCents(price - staff)
	return staff, shop
}

func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func normalizeService(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
