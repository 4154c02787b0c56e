package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPricingPolicy_Price(t *testing.T) {
	p := DefaultPricingPolicy()

	assert.Equal(t, 35.0, p.Price("corte"))
	assert.Equal(t, 50.0, p.Price("  Corte  e   Barba "))
	assert.Equal(t, p.DefaultPrice, p.Price("luzes"))
	assert.Equal(t, p.DefaultPrice, p.Price(""))
}

func TestPricingPolicy_PriceUsesNormalizedKeys(t *testing.T) {
	raw := PricingPolicy{DefaultPrice: 20, Services: map[string]float64{" Corte  E Barba": 60, "Pezinho": 0}}

	assert.Equal(t, 20.0, raw.Price("corte e barba"))

	p := raw.Normalize()
	assert.Equal(t, 60.0, p.Price("CORTE e barba"))
	assert.Equal(t, 0.0, p.Price("pezinho"), "a zero price is still a known service")
	assert.Equal(t, 20.0, p.Price("luzes"))
}

func TestPricingPolicy_Split(t *testing.T) {
	p := PricingPolicy{StaffShare: 0.8}

	staff, shop := p.Split(50)
	assert.Equal(t, 40.0, staff)
	assert.Equal(t, 10.0, shop)

	p.StaffShare = 0.7
	staff, shop = p.Split(35)
	assert.Equal(t, 24.5, staff)
	assert.Equal(t, 10.5, shop)
	assert.Equal(t, 35.0, staff+shop)
}

func TestPricingPolicy_Validate(t *testing.T) {
	assert.NoError(t, DefaultPricingPolicy().Validate())

	assert.Error(t, PricingPolicy{StaffShare: 1.5}.Validate())
	assert.Error(t, PricingPolicy{StaffShare: 0.5, DefaultPrice: -1}.Validate())
	assert.Error(t, PricingPolicy{StaffShare: 0.5, Services: map[string]float64{"corte": -10}}.Validate())
	assert.Error(t, PricingPolicy{StaffShare: 0.5, Services: map[string]float64{" ": 10}}.Validate())
}

func TestNewAppointment_Validate(t *testing.T) {
	ok := NewAppointment{ClientName: "João", Service: "corte", Barber: "ana", Date: "2024-01-10", Time: "10:00"}
	assert.NoError(t, ok.Validate())

	err := NewAppointment{ClientName: "João", Service: " ", Barber: "ana"}.Validate()
	var missing *MissingFieldsError
	if assert.ErrorAs(t, err, &missing) {
		assert.Equal(t, []string{"servico", "dia", "horario"}, missing.Fields)
	}
}

func TestReschedule_Validate(t *testing.T) {
	assert.NoError(t, Reschedule{Barber: "ana", Date: "2024-01-10", Time: "10:00"}.Validate())

	err := Reschedule{Barber: "ana"}.Validate()
	var missing *MissingFieldsError
	if assert.ErrorAs(t, err, &missing) {
		assert.Equal(t, []string{"dia", "horario"}, missing.Fields)
	}
}
