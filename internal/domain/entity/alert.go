package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AlertConfig regla de alerta de una empresa sobre licitaciones públicas (SEACE).
type AlertConfig struct {
	ID                 string
	CompanyID          string
	Name               string
	Keywords           []string
	Entities           []string
	Regions            []string
	MinAmount          *decimal.Decimal
	MaxAmount          *decimal.Decimal
	NotifyEmail        string
	DaysBeforeDeadline int
	Active             bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Tender proceso de contratación publicado en un portal del Estado.
type Tender struct {
	ID              string
	Source          string // seace, perucompras, ...
	ExternalID      string
	Entity          string
	Title           string
	Description     string
	ObjectType      string // bien, servicio, obra, consultoría
	Region          string
	EstimatedAmount *decimal.Decimal
	Currency        string
	PublishedAt     time.Time
	DeadlineAt      *time.Time
	URL             string
	CreatedAt       time.Time
}

// Tipos de coincidencia registrados.
const (
	AlertKindMatch    = "match"
	AlertKindDeadline = "deadline"
)

// AlertMatch coincidencia registrada entre una regla y una licitación.
type AlertMatch struct {
	ID            string
	AlertConfigID string
	TenderID      string
	Kind          string
	NotifiedAt    *time.Time
	CreatedAt     time.Time
}
