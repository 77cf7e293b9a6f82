package repository

import (
	"context"
	"encoding/json"
)

// SettingsRepository almacena ajustes de sistema como documentos JSON por clave.
type SettingsRepository interface {
	// Get devuelve nil (sin error) si la clave no existe.
	Get(ctx context.Context, key string) (json.RawMessage, error)
	Put(ctx context.Context, key string, value json.RawMessage) error
}
