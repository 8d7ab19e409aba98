package dto

import "github.com/shopspring/decimal"

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// Response es el sobre estándar de la API: {success, message, data} en éxito,
// {success:false, message, error} en fallo. StockDetails solo se incluye en
// rechazos por stock insuficiente.
type Response struct {
	Success      bool          `json:"success"`
	Message      string        `json:"message"`
	Data         any           `json:"data,omitempty"`
	Error        string        `json:"error,omitempty"`
	StockDetails *StockDetails `json:"stockDetails,omitempty"`
}

// StockDetails detalla un rechazo por stock insuficiente.
type StockDetails struct {
	Available decimal.Decimal `json:"available"`
	Requested decimal.Decimal `json:"requested"`
	Shortfall decimal.Decimal `json:"shortfall"`
	Unit      string          `json:"unit"`
}

// OK construye una respuesta de éxito.
func OK(message string, data any) Response {
	return Response{Success: true, Message: message, Data: data}
}

// Fail construye una respuesta de error.
func Fail(message string, cause string) Response {
	return Response{Success: false, Message: message, Error: cause}
}
