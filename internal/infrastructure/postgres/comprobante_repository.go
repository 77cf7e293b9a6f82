package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/contaperu/contaperu-api/internal/domain"
	"github.com/contaperu/contaperu-api/internal/domain/declaration"
	"github.com/contaperu/contaperu-api/internal/domain/entity"
	"github.com/contaperu/contaperu-api/internal/domain/repository"
)

var _ repository.ComprobanteRepository = (*ComprobanteRepo)(nil)

// ComprobanteRepo implementación de ComprobanteRepository sobre PostgreSQL (pool o tx).
type ComprobanteRepo struct {
	q Querier
}

// NewComprobanteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewComprobanteRepository(q Querier) *ComprobanteRepo {
	return &ComprobanteRepo{q: q}
}

const comprobanteColumns = `id, company_id, direction, document_type, serie, numero, issue_date, due_date,
	currency, emitter_ruc, emitter_name, receiver_doc_type, receiver_doc, receiver_name,
	base_amount, igv_amount, total_amount, exonerated_amount, unaffected_amount, notes,
	reference_document, note_reason_code, note_reason, signature_hash, fingerprint,
	storage_key, source_filename, size_bytes, created_at, updated_at`

const itemColumns = `id, comprobante_id, line_number, code, description, unit_code, quantity,
	unit_value, unit_price, base_amount, igv_amount, total_amount, igv_affectation_code`

// Insert persiste cabecera y líneas en una transacción (savepoint si q ya es una tx).
// Si la clave (empresa, emisor, tipo, serie, número) existe y está vigente no se
// toca nada y devuelve false. Un comprobante eliminado lógicamente se restaura con
// el contenido nuevo.
func (r *ComprobanteRepo) Insert(ctx context.Context, c *entity.Comprobante) (bool, error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	tx, err := r.q.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin insert comprobante: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO comprobantes (` + comprobanteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		        $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30)
		ON CONFLICT ON CONSTRAINT uq_comprobantes_key DO UPDATE SET
		    direction = EXCLUDED.direction, issue_date = EXCLUDED.issue_date, due_date = EXCLUDED.due_date,
		    currency = EXCLUDED.currency, emitter_name = EXCLUDED.emitter_name,
		    receiver_doc_type = EXCLUDED.receiver_doc_type, receiver_doc = EXCLUDED.receiver_doc,
		    receiver_name = EXCLUDED.receiver_name, base_amount = EXCLUDED.base_amount,
		    igv_amount = EXCLUDED.igv_amount, total_amount = EXCLUDED.total_amount,
		    exonerated_amount = EXCLUDED.exonerated_amount, unaffected_amount = EXCLUDED.unaffected_amount,
		    notes = EXCLUDED.notes, reference_document = EXCLUDED.reference_document,
		    note_reason_code = EXCLUDED.note_reason_code, note_reason = EXCLUDED.note_reason,
		    signature_hash = EXCLUDED.signature_hash, fingerprint = EXCLUDED.fingerprint,
		    storage_key = EXCLUDED.storage_key, source_filename = EXCLUDED.source_filename,
		    size_bytes = EXCLUDED.size_bytes, updated_at = EXCLUDED.updated_at, deleted_at = NULL
		  WHERE comprobantes.deleted_at IS NOT NULL
		RETURNING id`
	var id string
	err = tx.QueryRow(ctx, query,
		c.ID, c.CompanyID, c.Direction, c.DocumentType, c.Serie, c.Numero, c.IssueDate, c.DueDate,
		c.Currency, c.EmitterRUC, c.EmitterName, c.ReceiverDocType, c.ReceiverDoc, c.ReceiverName,
		c.BaseAmount, c.IGVAmount, c.TotalAmount, c.ExoneratedAmount, c.UnaffectedAmount, nonNil(c.Notes),
		c.ReferenceDocument, c.NoteReasonCode, c.NoteReason, c.SignatureHash, c.Fingerprint,
		c.StorageKey, c.SourceFilename, c.SizeBytes, c.CreatedAt, c.UpdatedAt,
	).Scan(&id)
	if err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, fmt.Errorf("insert comprobante %s: %w", c.DocumentNumber(), err)
	}
	c.ID = id

	// Restauración: reemplazar las líneas anteriores.
	if _, err := tx.Exec(ctx, `DELETE FROM comprobante_items WHERE comprobante_id = $1`, id); err != nil {
		return false, fmt.Errorf("reset items: %w", err)
	}
	for i := range c.Items {
		it := &c.Items[i]
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		it.ComprobanteID = id
		_, err := tx.Exec(ctx, `
			INSERT INTO comprobante_items (`+itemColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			it.ID, it.ComprobanteID, it.LineNumber, it.Code, it.Description, it.UnitCode, it.Quantity,
			it.UnitValue, it.UnitPrice, it.BaseAmount, it.IGVAmount, it.TotalAmount, it.IGVAffectationCode,
		)
		if err != nil {
			return false, fmt.Errorf("insert item %d: %w", it.LineNumber, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit insert comprobante: %w", err)
	}
	return true, nil
}

// GetByID devuelve el comprobante vigente con sus líneas; nil si no existe.
func (r *ComprobanteRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Comprobante, error) {
	query := `SELECT ` + comprobanteColumns + ` FROM comprobantes
		WHERE company_id = $1 AND id = $2 AND deleted_at IS NULL`
	c, err := scanComprobante(r.q.QueryRow(ctx, query, companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get comprobante: %w", err)
	}

	rows, err := r.q.Query(ctx, `SELECT `+itemColumns+` FROM comprobante_items
		WHERE comprobante_id = $1 ORDER BY line_number`, id)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.ComprobanteItem
		if err := rows.Scan(
			&it.ID, &it.ComprobanteID, &it.LineNumber, &it.Code, &it.Description, &it.UnitCode, &it.Quantity,
			&it.UnitValue, &it.UnitPrice, &it.BaseAmount, &it.IGVAmount, &it.TotalAmount, &it.IGVAffectationCode,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		c.Items = append(c.Items, it)
	}
	return c, rows.Err()
}

// List devuelve la página solicitada y el total de coincidencias.
func (r *ComprobanteRepo) List(ctx context.Context, companyID string, f entity.ComprobanteFilter) ([]*entity.Comprobante, int, error) {
	where, args, err := comprobanteWhere(companyID, f)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM comprobantes WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count comprobantes: %w", err)
	}

	limit := f.Limit
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM comprobantes WHERE %s
		ORDER BY issue_date DESC, serie, numero LIMIT $%d OFFSET $%d`,
		comprobanteColumns, where, len(args)-1, len(args))

	list, err := r.queryList(ctx, query, args...)
	return list, total, err
}

// ListByPeriod devuelve todos los comprobantes vigentes del periodo YYYY-MM (sin líneas).
func (r *ComprobanteRepo) ListByPeriod(ctx context.Context, companyID, period string) ([]*entity.Comprobante, error) {
	from, to, err := declaration.ParsePeriod(period)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	query := `SELECT ` + comprobanteColumns + ` FROM comprobantes
		WHERE company_id = $1 AND deleted_at IS NULL AND issue_date >= $2 AND issue_date < $3
		ORDER BY issue_date, serie, numero`
	return r.queryList(ctx, query, companyID, from, to)
}

// SoftDelete marca el comprobante como eliminado.
func (r *ComprobanteRepo) SoftDelete(ctx context.Context, companyID, id string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE comprobantes SET deleted_at = now()
		WHERE company_id = $1 AND id = $2 AND deleted_at IS NULL`, companyID, id)
	if err != nil {
		return fmt.Errorf("soft delete comprobante: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// StorageBytes suma el tamaño de los documentos originales vigentes y cuenta los comprobantes.
func (r *ComprobanteRepo) StorageBytes(ctx context.Context, companyID string) (int64, int, error) {
	var bytes int64
	var count int
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(size_bytes), 0), count(*) FROM comprobantes
		WHERE company_id = $1 AND deleted_at IS NULL`, companyID).Scan(&bytes, &count)
	if err != nil {
		return 0, 0, fmt.Errorf("storage bytes: %w", err)
	}
	return bytes, count, nil
}

func (r *ComprobanteRepo) queryList(ctx context.Context, query string, args ...any) ([]*entity.Comprobante, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list comprobantes: %w", err)
	}
	defer rows.Close()

	var list []*entity.Comprobante
	for rows.Next() {
		c, err := scanComprobante(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comprobante: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func comprobanteWhere(companyID string, f entity.ComprobanteFilter) (string, []any, error) {
	conds := []string{"company_id = $1", "deleted_at IS NULL"}
	args := []any{companyID}
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.Period != "" {
		from, to, err := declaration.ParsePeriod(f.Period)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		add("issue_date >= $%d", from)
		add("issue_date < $%d", to)
	}
	if f.Direction != "" {
		add("direction = $%d", f.Direction)
	}
	if f.DocumentType != "" {
		add("document_type = $%d", f.DocumentType)
	}
	if f.RUC != "" {
		args = append(args, f.RUC)
		n := len(args)
		conds = append(conds, fmt.Sprintf("(emitter_ruc = $%d OR receiver_doc = $%d)", n, n))
	}
	return strings.Join(conds, " AND "), args, nil
}

func scanComprobante(row pgx.Row) (*entity.Comprobante, error) {
	var c entity.Comprobante
	err := row.Scan(
		&c.ID, &c.CompanyID, &c.Direction, &c.DocumentType, &c.Serie, &c.Numero, &c.IssueDate, &c.DueDate,
		&c.Currency, &c.EmitterRUC, &c.EmitterName, &c.ReceiverDocType, &c.ReceiverDoc, &c.ReceiverName,
		&c.BaseAmount, &c.IGVAmount, &c.TotalAmount, &c.ExoneratedAmount, &c.UnaffectedAmount, &c.Notes,
		&c.ReferenceDocument, &c.NoteReasonCode, &c.NoteReason, &c.SignatureHash, &c.Fingerprint,
		&c.StorageKey, &c.SourceFilename, &c.SizeBytes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
