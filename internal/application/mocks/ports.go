package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/contaperu/contaperu-api/internal/application/ports"
	"github.com/contaperu/contaperu-api/internal/domain/entity"
)

var (
	_ ports.ObjectStorage            = (*ObjectStorage)(nil)
	_ ports.Mailer                   = (*Mailer)(nil)
	_ ports.LLMService               = (*LLMService)(nil)
	_ ports.TaxpayerLookup           = (*TaxpayerLookup)(nil)
	_ ports.Cache                    = (*Cache)(nil)
	_ ports.ComprobantePDFGenerator  = (*PDFGenerator)(nil)
	_ ports.InventoryPDFGenerator    = (*PDFGenerator)(nil)
	_ ports.InventoryReportGenerator = (*ReportGenerator)(nil)
)

type ObjectStorage struct{ mock.Mock }

func (m *ObjectStorage) Put(ctx context.Context, key string, data []byte, contentType string) error {
	return m.Called(ctx, key, data, contentType).Error(0)
}

func (m *ObjectStorage) Usage(ctx context.Context, prefix string) (int64, int, error) {
	args := m.Called(ctx, prefix)
	return args.Get(0).(int64), args.Int(1), args.Error(2)
}

type Mailer struct{ mock.Mock }

func (m *Mailer) Send(ctx context.Context, smtp entity.SMTPSettings, msg ports.MailMessage) error {
	return m.Called(ctx, smtp, msg).Error(0)
}

type LLMService struct{ mock.Mock }

func (m *LLMService) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *LLMService) Provider() string {
	return m.Called().String(0)
}

type TaxpayerLookup struct{ mock.Mock }

func (m *TaxpayerLookup) LookupRUC(ctx context.Context, ruc string) (*entity.TaxpayerInfo, error) {
	args := m.Called(ctx, ruc)
	i, _ := args.Get(0).(*entity.TaxpayerInfo)
	return i, args.Error(1)
}

func (m *TaxpayerLookup) LookupDNI(ctx context.Context, dni string) (*entity.PersonInfo, error) {
	args := m.Called(ctx, dni)
	i, _ := args.Get(0).(*entity.PersonInfo)
	return i, args.Error(1)
}

type Cache struct{ mock.Mock }

func (m *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	args := m.Called(ctx, key)
	b, _ := args.Get(0).([]byte)
	return b, args.Bool(1), args.Error(2)
}

func (m *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

type PDFGenerator struct{ mock.Mock }

func (m *PDFGenerator) ComprobantePDF(ctx context.Context, c *entity.Comprobante, company *entity.Company) ([]byte, error) {
	args := m.Called(ctx, c, company)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func (m *PDFGenerator) InventoryPDF(ctx context.Context, company *entity.Company, period string, products []*entity.Product) ([]byte, error) {
	args := m.Called(ctx, company, period, products)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

type ReportGenerator struct{ mock.Mock }

func (m *ReportGenerator) Anexo2(ctx context.Context, company *entity.Company, period string, products []*entity.Product) ([]byte, error) {
	args := m.Called(ctx, company, period, products)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}
