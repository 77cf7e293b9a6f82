package entity

import "time"

// Company representa una empresa contribuyente (tenant) identificada por su RUC.
type Company struct {
	ID              string
	RUC             string
	RazonSocial     string
	NombreComercial string
	Address         string
	Email           string
	Phone           string
	Status          string // active, suspended, inactive
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Estados de la empresa.
const (
	CompanyStatusActive    = "active"
	CompanyStatusSuspended = "suspended"
	CompanyStatusInactive  = "inactive"
)
