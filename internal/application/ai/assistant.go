package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/contaperu/contaperu-api/internal/application/dto"
	"github.com/contaperu/contaperu-api/internal/application/ports"
	"github.com/contaperu/contaperu-api/internal/domain"
	"github.com/contaperu/contaperu-api/internal/domain/entity"
	"github.com/contaperu/contaperu-api/internal/domain/repository"
	"github.com/contaperu/contaperu-api/pkg/logger"
	"github.com/contaperu/contaperu-api/pkg/sunat"
)

// CallTimeout límite de cada llamada al proveedor.
const CallTimeout = 30 * time.Second

const systemPrompt = `Eres un asistente contable especializado en tributación peruana.
Respondes en español, de forma breve y precisa, citando la norma SUNAT cuando corresponda
(Ley del IGV, Ley del Impuesto a la Renta, Reglamento de Comprobantes de Pago).
La tasa general es IGV 16% + IPM 2% (18%). Si la pregunta no es contable o tributaria,
indícalo con cortesía. No inventes cifras: si falta un dato, pídelo.`

// Assistant responde consultas contables con el proveedor configurado.
type Assistant struct {
	router       *Router
	comprobantes repository.ComprobanteRepository
	log          *logger.Logger
	timeout      time.Duration
}

// NewAssistant construye el asistente.
func NewAssistant(router *Router, comprobantes repository.ComprobanteRepository, log *logger.Logger) *Assistant {
	return &Assistant{
		router:       router,
		comprobantes: comprobantes,
		log:          logger.OrNop(log).Component("ai"),
		timeout:      CallTimeout,
	}
}

// Chat responde una pregunta. Con ComprobanteID agrega el comprobante como contexto.
func (a *Assistant) Chat(ctx context.Context, companyID string, in dto.ChatRequest) (*dto.ChatResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	llm, err := a.router.Current(ctx)
	if err != nil {
		return nil, err
	}

	system := systemPrompt
	if in.ComprobanteID != "" {
		c, err := a.comprobantes.GetByID(ctx, companyID, in.ComprobanteID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, fmt.Errorf("comprobante: %w", domain.ErrNotFound)
		}
		system += "\n\nComprobante en consulta:\n" + describe(c)
	}

	msgs := make([]ports.ChatMessage, 0, len(in.History)+1)
	for _, h := range in.History {
		msgs = append(msgs, ports.ChatMessage{Role: h.Role, Content: h.Content})
	}
	msgs = append(msgs, ports.ChatMessage{Role: "user", Content: in.Message})

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	answer, err := llm.Complete(ctx, ports.CompletionRequest{System: system, Messages: msgs})
	if err != nil {
		a.log.Warn().Err(err).Str("provider", llm.Provider()).Msg("consulta IA fallida")
		return nil, fmt.Errorf("asistente IA: %w", err)
	}
	return &dto.ChatResponse{Answer: strings.TrimSpace(answer), Provider: llm.Provider()}, nil
}

// TestProvider ida y vuelta mínima con el proveedor configurado.
func (a *Assistant) TestProvider(ctx context.Context) *dto.AITestResponse {
	llm, err := a.router.Current(ctx)
	if err != nil {
		return &dto.AITestResponse{Success: false, Message: err.Error()}
	}
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	_, err = llm.Complete(ctx, ports.CompletionRequest{
		Messages:  []ports.ChatMessage{{Role: "user", Content: "Responde solo: OK"}},
		MaxTokens: 16,
	})
	if err != nil {
		return &dto.AITestResponse{Success: false, Provider: llm.Provider(), Message: err.Error()}
	}
	return &dto.AITestResponse{Success: true, Provider: llm.Provider(), Message: "Conexión correcta"}
}

// describe resumen textual del comprobante para el prompt.
func describe(c *entity.Comprobante) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s emitido el %s\n", sunat.DocumentTypeNames[c.DocumentType], c.DocumentNumber(), c.IssueDate.Format("2006-01-02"))
	fmt.Fprintf(&b, "Emisor: %s (RUC %s)\n", c.EmitterName, c.EmitterRUC)
	fmt.Fprintf(&b, "Receptor: %s (%s)\n", c.ReceiverName, c.ReceiverDoc)
	fmt.Fprintf(&b, "Moneda %s. Base %s, IGV %s, total %s\n", c.Currency,
		c.BaseAmount.StringFixed(2), c.IGVAmount.StringFixed(2), c.TotalAmount.StringFixed(2))
	if c.ReferenceDocument != "" {
		fmt.Fprintf(&b, "Documento afectado: %s. Motivo: %s\n", c.ReferenceDocument, c.NoteReason)
	}
	for _, it := range c.Items {
		fmt.Fprintf(&b, "- %s x %s: %s\n", it.Quantity.String(), it.Description, it.TotalAmount.StringFixed(2))
	}
	return b.String()
}
