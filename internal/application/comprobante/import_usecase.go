// Package comprobante orquesta la importación de comprobantes electrónicos SUNAT
// (XML/ZIP) y sus consultas.
package comprobante

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/contaperu/contaperu-api/internal/application/dto"
	"github.com/contaperu/contaperu-api/internal/application/ports"
	"github.com/contaperu/contaperu-api/internal/domain"
	"github.com/contaperu/contaperu-api/internal/domain/entity"
	"github.com/contaperu/contaperu-api/internal/domain/repository"
	"github.com/contaperu/contaperu-api/internal/infrastructure/storage"
	"github.com/contaperu/contaperu-api/internal/infrastructure/ubl"
	"github.com/contaperu/contaperu-api/pkg/logger"
)

// ErrForeignDocument la empresa no es emisora ni adquiriente del comprobante.
var ErrForeignDocument = errors.New("el comprobante no pertenece a la empresa")

// UploadedFile archivo recibido (XML suelto o ZIP).
type UploadedFile struct {
	Filename string
	Data     []byte
}

// ImportOptions opciones del lote.
type ImportOptions struct {
	// FailFast: el primer documento inválido aborta el lote sin persistir nada.
	FailFast bool
}

// Config límites de la importación.
type Config struct {
	Workers       int   // decodificación concurrente; <= 0 usa 4
	MaxEntryBytes int64 // tamaño máximo de cada XML dentro de un ZIP
	MaxZipBytes   int64 // total descomprimido de todos los ZIP del lote
	MaxZipEntries int   // cantidad total de XML extraídos de ZIP en el lote
}

// ImportUseCase detecta, expande, decodifica, clasifica y persiste comprobantes.
type ImportUseCase struct {
	comprobantes repository.ComprobanteRepository
	companies    repository.CompanyRepository
	tx           TxRunner
	storage      ports.ObjectStorage // nil si el archivo de originales está deshabilitado
	decoder      *ubl.Decoder
	cfg          Config
	log          *logger.Logger
	now          func() time.Time
}

// NewImportUseCase construye el caso de uso. storage puede ser nil.
func NewImportUseCase(
	comprobantes repository.ComprobanteRepository,
	companies repository.CompanyRepository,
	tx TxRunner,
	store ports.ObjectStorage,
	decoder *ubl.Decoder,
	cfg Config,
	log *logger.Logger,
) *ImportUseCase {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.MaxEntryBytes <= 0 {
		cfg.MaxEntryBytes = 10 << 20
	}
	if cfg.MaxZipBytes <= 0 {
		cfg.MaxZipBytes = 100 << 20
	}
	if cfg.MaxZipEntries <= 0 {
		cfg.MaxZipEntries = 5000
	}
	return &ImportUseCase{
		comprobantes: comprobantes,
		companies:    companies,
		tx:           tx,
		storage:      store,
		decoder:      decoder,
		cfg:          cfg,
		log:          logger.OrNop(log).Component("import"),
		now:          time.Now,
	}
}

// document unidad de trabajo: un XML (suelto o extraído de un ZIP).
type document struct {
	filename string
	data     []byte
	parsed   *entity.Comprobante
	err      error
}

// Import procesa el lote y devuelve importados, duplicados y fallidos.
// Con FailFast devuelve error ante el primer documento inválido y no persiste nada.
func (uc *ImportUseCase) Import(ctx context.Context, companyID string, files []UploadedFile, opts ImportOptions) (*dto.ImportResult, error) {
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	docs := uc.expand(files)
	if err := uc.decodeAll(ctx, company, docs); err != nil {
		return nil, err
	}

	result := &dto.ImportResult{Failed: []dto.ImportFailure{}}
	valid := make([]*document, 0, len(docs))
	for _, d := range docs {
		if d.err != nil {
			if opts.FailFast {
				return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, d.filename, d.err)
			}
			result.Failed = append(result.Failed, dto.ImportFailure{Filename: d.filename, Reason: d.err.Error()})
			continue
		}
		valid = append(valid, d)
	}

	uc.archive(ctx, company, valid)

	if opts.FailFast {
		err := uc.tx.Run(ctx, func(repo repository.ComprobanteRepository) error {
			for _, d := range valid {
				inserted, err := repo.Insert(ctx, d.parsed)
				if err != nil {
					return fmt.Errorf("%s: %w", d.filename, err)
				}
				countInsert(result, inserted)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("importar lote: %w", err)
		}
	} else {
		for _, d := range valid {
			inserted, err := uc.comprobantes.Insert(ctx, d.parsed)
			if err != nil {
				uc.log.Error().Err(err).Str("file", d.filename).Msg("no se pudo persistir el comprobante")
				result.Failed = append(result.Failed, dto.ImportFailure{Filename: d.filename, Reason: "error al guardar el comprobante"})
				continue
			}
			countInsert(result, inserted)
		}
	}

	uc.log.Info().
		Str("company_id", companyID).
		Int("imported", result.Imported).
		Int("duplicates", result.Duplicates).
		Int("failed", len(result.Failed)).
		Msg("lote de comprobantes procesado")
	return result, nil
}

func countInsert(r *dto.ImportResult, inserted bool) {
	if inserted {
		r.Imported++
	} else {
		r.Duplicates++
	}
}

// expand convierte los archivos subidos en documentos XML individuales. Los
// límites de ZIP se reparten entre todos los archivos del lote.
func (uc *ImportUseCase) expand(files []UploadedFile) []*document {
	var docs []*document
	budget := ubl.Limits{
		MaxEntryBytes: uc.cfg.MaxEntryBytes,
		MaxTotalBytes: uc.cfg.MaxZipBytes,
		MaxEntries:    uc.cfg.MaxZipEntries,
	}
	for _, f := range files {
		switch ubl.DetectKind(f.Data) {
		case ubl.KindXML:
			docs = append(docs, &document{filename: f.Filename, data: f.Data})
		case ubl.KindZIP:
			if budget.MaxTotalBytes <= 0 || budget.MaxEntries <= 0 {
				docs = append(docs, &document{filename: f.Filename, err: ubl.ErrArchiveTooLarge})
				continue
			}
			entries, err := ubl.ExtractXML(f.Data, budget)
			if err != nil {
				docs = append(docs, &document{filename: f.Filename, err: err})
				continue
			}
			if len(entries) == 0 {
				docs = append(docs, &document{filename: f.Filename, err: errors.New("el ZIP no contiene archivos XML")})
				continue
			}
			for _, e := range entries {
				budget.MaxTotalBytes -= int64(len(e.Data))
				docs = append(docs, &document{filename: path.Join(f.Filename, e.Name), data: e.Data})
			}
			budget.MaxEntries -= len(entries)
		default:
			docs = append(docs, &document{filename: f.Filename, err: errors.New("formato no reconocido (se espera XML o ZIP)")})
		}
	}
	return docs
}

// decodeAll decodifica en paralelo con un máximo de cfg.Workers goroutines.
// Los errores por documento quedan en d.err; solo la cancelación del contexto aborta.
func (uc *ImportUseCase) decodeAll(ctx context.Context, company *entity.Company, docs []*document) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.cfg.Workers)
	for _, d := range docs {
		if d.err != nil {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			d.parsed, d.err = uc.decodeOne(company, d)
			if d.err != nil {
				uc.log.Warn().Err(d.err).Str("file", d.filename).Msg("comprobante descartado")
			}
			return nil
		})
	}
	return g.Wait()
}

func (uc *ImportUseCase) decodeOne(company *entity.Company, d *document) (c *entity.Comprobante, err error) {
	defer func() {
		if r := recover(); r != nil {
			c, err = nil, fmt.Errorf("%w: error interno al decodificar", domain.ErrUnrecognizedDocument)
		}
	}()
	parsed, err := uc.decoder.Decode(d.data)
	if err != nil {
		return nil, err
	}
	if !parsed.Reconciles(ubl.DefaultTolerance) {
		uc.log.Warn().
			Str("file", d.filename).
			Str("document", parsed.DocumentNumber()).
			Str("base", parsed.Base.String()).
			Str("tax", parsed.Tax.String()).
			Str("total", parsed.Total.String()).
			Msg("base + impuesto no cuadra con el total")
	}

	c = parsed.ToComprobante()
	switch {
	case c.EmitterRUC == company.RUC:
		c.Direction = entity.DirectionVenta
	case c.ReceiverDoc == company.RUC:
		c.Direction = entity.DirectionCompra
	default:
		return nil, fmt.Errorf("%w (emisor %s, adquiriente %s)", ErrForeignDocument, c.EmitterRUC, c.ReceiverDoc)
	}
	now := uc.now()
	c.CompanyID = company.ID
	c.SourceFilename = d.filename
	c.SizeBytes = int64(len(d.data))
	c.CreatedAt = now
	c.UpdatedAt = now
	return c, nil
}

// archive guarda el XML original en el almacenamiento de objetos. Un fallo no
// impide la importación: el comprobante queda sin storage_key.
func (uc *ImportUseCase) archive(ctx context.Context, company *entity.Company, docs []*document) {
	if uc.storage == nil {
		return
	}
	for _, d := range docs {
		c := d.parsed
		key := storage.ObjectKey(company.ID, c.IssueDate.Format("2006-01"), c.EmitterRUC, c.DocumentType, c.DocumentNumber())
		if err := uc.storage.Put(ctx, key, d.data, "application/xml"); err != nil {
			uc.log.Warn().Err(err).Str("file", d.filename).Str("key", key).Msg("no se pudo archivar el XML original")
			continue
		}
		c.StorageKey = key
	}
}
