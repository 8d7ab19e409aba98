package entity

import "time"

// Estados de una entrega.
const (
	DeliveryAssigned = "assigned"
	DeliveryPickedUp = "picked_up"
	DeliveryDone     = "delivered"
	DeliveryFailed   = "failed"
)

// Driver representa un conductor de reparto.
type Driver struct {
	ID        string
	Name      string
	Phone     string
	License   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Delivery asigna un pedido a un conductor.
type Delivery struct {
	ID        string
	OrderID   string
	DriverID  string
	Status    string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidDeliveryStatus indica si s es un estado de entrega reconocido.
func ValidDeliveryStatus(s string) bool {
	switch s {
	case DeliveryAssigned, DeliveryPickedUp, DeliveryDone, DeliveryFailed:
		return true
	}
	return false
}
