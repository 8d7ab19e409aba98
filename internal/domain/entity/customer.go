package entity

import "time"

// Customer representa un cliente al que se le despachan pedidos.
type Customer struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
