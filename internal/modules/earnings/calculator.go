package earnings

import (
	"sort"

	"barbearia/internal/domain"
)

type LineItem struct {
	ID             int64   `json:"id"`
	Cliente        string  `json:"cliente"`
	Servico        string  `json:"servico"`
	Preco          float64 `json:"preco"`
	Ganho          float64 `json:"ganho"`
	Comissao       float64 `json:"comissao"`
	Dia            string  `json:"dia"`
	Horario        string  `json:"horario"`
	FormaPagamento string  `json:"forma_pagamento,omitempty"`
}

// BarberReport aggregates one barber's appointments. Ganhos is the barber
// share, Comissao the part retained by the shop.
type BarberReport struct {
	Barbeiro     string     `json:"barbeiro"`
	Atendimentos int        `json:"atendimentos"`
	Bruto        float64    `json:"bruto"`
	Ganhos       float64    `json:"ganhos"`
	Comissao     float64    `json:"comissao"`
	Itens        []LineItem `json:"itens"`
}

type Totals struct {
	Atendimentos int     `json:"atendimentos"`
	Bruto        float64 `json:"bruto"`
	Ganhos       float64 `json:"ganhos"`
	Comissao     float64 `json:"comissao"`
}

type Report struct {
	Barbeiros []BarberReport `json:"barbeiros"`
	Totais    Totals         `json:"totais"`
}

// Earnings accumulates the shop commission of every appointment per barber.
func Earnings(appts []domain.Appointment, policy domain.PricingPolicy) map[string]float64 {
	out := make(map[string]float64)
	for _, a := range appts {
		_, shop := policy.Split(policy.Price(a.Service))
		out[a.Barber] += shop
	}
	for barber, v := range out {
		out[barber] = domain.RoundCents(v)
	}
	return out
}

// BuildReport groups appointments by barber, keeping the input order of the
// line items. Barbers are sorted by name.
func BuildReport(appts []domain.Appointment, policy domain.PricingPolicy) Report {
	byBarber := make(map[string]*BarberReport)
	for _, a := range appts {
		price := policy.Price(a.Service)
		staff, shop := policy.Split(price)

		br, ok := byBarber[a.Barber]
		if !ok {
			br = &BarberReport{Barbeiro: a.Barber, Itens: []LineItem{}}
			byBarber[a.Barber] = br
		}
		br.Atendimentos++
		br.Bruto += price
		br.Ganhos += staff
		br.Comissao += shop
		br.Itens = append(br.Itens, LineItem{
			ID:             a.ID,
			Cliente:        a.ClientName,
			Servico:        a.Service,
			Preco:          price,
			Ganho:          staff,
			Comissao:       shop,
			Dia:            a.Date,
			Horario:        a.Time,
			FormaPagamento: a.PaymentMethod,
		})
	}

	r := Report{Barbeiros: make([]BarberReport, 0, len(byBarber))}
	for _, br := range byBarber {
		br.Bruto = domain.RoundCents(br.Bruto)
		br.Ganhos = domain.RoundCents(br.Ganhos)
		br.Comissao = domain.RoundCents(br.Comissao)

		r.Totais.Atendimentos += br.Atendimentos
		r.Totais.Bruto += br.Bruto
		r.Totais.Ganhos += br.Ganhos
		r.Totais.Comissao += br.Comissao
		r.Barbeiros = append(r.Barbeiros, *br)
	}
	sort.Slice(r.Barbeiros, func(i, j int) bool {
		return r.Barbeiros[i].Barbeiro < r.Barbeiros[j].Barbeiro
	})

	r.Totais.Bruto = domain.RoundCents(r.Totais.Bruto)
	r.Totais.Ganhos = domain.RoundCents(r.Totais.Ganhos)
	r.Totais.Comissao = domain.RoundCents(r.Totais.Comissao)
	return r
}
