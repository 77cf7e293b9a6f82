package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/contaperu/contaperu-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo tabla system_settings (clave -> JSONB).
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador.
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// Get devuelve el documento JSON de la clave, o nil si no existe.
func (r *SettingsRepo) Get(ctx context.Context, key string) (json.RawMessage, error) {
	var raw []byte
	err := r.q.QueryRow(ctx, `SELECT value FROM system_settings WHERE key = $1`, key).Scan(&raw)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get setting %s: %w", key, err)
	}
	return json.RawMessage(raw), nil
}

// Put crea o reemplaza el documento de la clave.
func (r *SettingsRepo) Put(ctx context.Context, key string, value json.RawMessage) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO system_settings (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, []byte(value))
	if err != nil {
		return fmt.Errorf("put setting %s: %w", key, err)
	}
	return nil
}
