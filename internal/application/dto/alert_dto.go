package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AlertConfigRequest entrada para crear o reemplazar una regla de alerta.
type AlertConfigRequest struct {
	Name               string           `json:"name" validate:"required,min=1,max=120"`
	Keywords           []string         `json:"keywords" validate:"max=50,dive,min=1,max=100"`
	Entities           []string         `json:"entities" validate:"max=50,dive,min=1,max=200"`
	Regions            []string         `json:"regions" validate:"max=30,dive,min=1,max=60"`
	MinAmount          *decimal.Decimal `json:"min_amount"`
	MaxAmount          *decimal.Decimal `json:"max_amount"`
	NotifyEmail        string           `json:"notify_email" validate:"omitempty,email"`
	DaysBeforeDeadline int              `json:"days_before_deadline" validate:"min=0,max=60"`
	Active             *bool            `json:"active"`
}

// AlertConfigResponse salida de una regla.
type AlertConfigResponse struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	Keywords           []string         `json:"keywords"`
	Entities           []string         `json:"entities"`
	Regions            []string         `json:"regions"`
	MinAmount          *decimal.Decimal `json:"min_amount"`
	MaxAmount          *decimal.Decimal `json:"max_amount"`
	NotifyEmail        string           `json:"notify_email"`
	DaysBeforeDeadline int              `json:"days_before_deadline"`
	Active             bool             `json:"active"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// AlertMatchResponse coincidencia registrada.
type AlertMatchResponse struct {
	ID            string     `json:"id"`
	AlertConfigID string     `json:"alert_config_id"`
	TenderID      string     `json:"tender_id"`
	Kind          string     `json:"kind"`
	NotifiedAt    *time.Time `json:"notified_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

// TenderRequest licitación a ingerir (POST /api/admin/tenders).
type TenderRequest struct {
	Source          string           `json:"source" validate:"required,max=30"`
	ExternalID      string           `json:"external_id" validate:"required,max=100"`
	Entity          string           `json:"entity" validate:"required,max=300"`
	Title           string           `json:"title" validate:"required"`
	Description     string           `json:"description"`
	ObjectType      string           `json:"object_type" validate:"omitempty,max=40"`
	Region          string           `json:"region" validate:"omitempty,max=60"`
	EstimatedAmount *decimal.Decimal `json:"estimated_amount"`
	Currency        string           `json:"currency" validate:"omitempty,len=3"`
	PublishedAt     time.Time        `json:"published_at" validate:"required"`
	DeadlineAt      *time.Time       `json:"deadline_at"`
	URL             string           `json:"url" validate:"omitempty,url"`
}

// TenderBatchRequest lote de licitaciones.
type TenderBatchRequest struct {
	Tenders []TenderRequest `json:"tenders" validate:"required,min=1,max=1000,dive"`
}

// TenderBatchResponse resultado del upsert masivo.
type TenderBatchResponse struct {
	Upserted int `json:"upserted"`
}

// ScanResult resultado de una pasada del escáner de alertas.
type ScanResult struct {
	Configs    int `json:"configs"`
	Tenders    int `json:"tenders"`
	NewMatches int `json:"new_matches"`
	Deadlines  int `json:"deadlines"`
	Notified   int `json:"notified"`
	Errors     int `json:"errors"`
}
