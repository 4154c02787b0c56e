package earnings

import (
	"strings"

	"barbearia/internal/domain"
)

// ReportQuery holds the optional filters shared by /ganhos and /relatorio.
// "de" and "ate" bound the day range inclusively.
type ReportQuery struct {
	Barbeiro string `form:"barbeiro" json:"barbeiro"`
	Dia      string `form:"dia" json:"dia"`
	De       string `form:"de" json:"de" validate:"omitempty,datetime=2006-01-02"`
	Ate      string `form:"ate" json:"ate" validate:"omitempty,datetime=2006-01-02"`
}

func (q ReportQuery) Filter() domain.AppointmentFilter {
	return domain.AppointmentFilter{
		Barber: strings.TrimSpace(q.Barbeiro),
		Date:   strings.TrimSpace(q.Dia),
		From:   strings.TrimSpace(q.De),
		To:     strings.TrimSpace(q.Ate),
	}
}
