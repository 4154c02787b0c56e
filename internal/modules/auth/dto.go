package auth

type LoginRequest struct {
	Usuario string `json:"usuario" validate:"required"`
	Senha   string `json:"senha" validate:"required"`
}

type LoginResponse struct {
	OK       bool   `json:"ok"`
	Barbeiro string `json:"barbeiro"`
	Tipo     string `json:"tipo"`
	Token    string `json:"token"`
}
