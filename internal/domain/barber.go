package domain

import "time"

type BarberRole string

const (
	RoleBarber  BarberRole = "barbeiro"
	RoleManager BarberRole = "gerente"
)

func (r BarberRole) Valid() bool {
	return r == RoleBarber || r == RoleManager
}

// Barber is a staff account able to log in. Appointments reference barbers
// by Username only, without a foreign key.
type Barber struct {
	ID           int64      `json:"id"`
	Username     string     `json:"usuario"`
	PasswordHash string     `json:"-"`
	Role         BarberRole `json:"tipo"`
	CreatedAt    time.Time  `json:"created_at"`
}
