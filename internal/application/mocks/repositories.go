// Package mocks dobles de prueba (testify/mock) de los puertos de dominio y aplicación.
package mocks

import (
	"context"
	"encoding/json"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/contaperu/contaperu-api/internal/domain/entity"
	"github.com/contaperu/contaperu-api/internal/domain/repository"
)

var (
	_ repository.UserRepository        = (*UserRepository)(nil)
	_ repository.CompanyRepository     = (*CompanyRepository)(nil)
	_ repository.ComprobanteRepository = (*ComprobanteRepository)(nil)
	_ repository.AlertRepository       = (*AlertRepository)(nil)
	_ repository.TenderRepository      = (*TenderRepository)(nil)
	_ repository.SettingsRepository    = (*SettingsRepository)(nil)
	_ repository.ProductRepository     = (*ProductRepository)(nil)
)

// ── Users ─────────────────────────────────────────────────────────────────────

type UserRepository struct{ mock.Mock }

func (m *UserRepository) Create(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *UserRepository) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.User, error) {
	args := m.Called(ctx, companyID, limit, offset)
	l, _ := args.Get(0).([]*entity.User)
	return l, args.Error(1)
}

// ── Companies ─────────────────────────────────────────────────────────────────

type CompanyRepository struct{ mock.Mock }

func (m *CompanyRepository) Create(ctx context.Context, c *entity.Company) error {
	return m.Called(ctx, c).Error(0)
}

func (m *CompanyRepository) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*entity.Company)
	return c, args.Error(1)
}

func (m *CompanyRepository) GetByRUC(ctx context.Context, ruc string) (*entity.Company, error) {
	args := m.Called(ctx, ruc)
	c, _ := args.Get(0).(*entity.Company)
	return c, args.Error(1)
}

func (m *CompanyRepository) Update(ctx context.Context, c *entity.Company) error {
	return m.Called(ctx, c).Error(0)
}

func (m *CompanyRepository) List(ctx context.Context, limit, offset int) ([]*entity.Company, error) {
	args := m.Called(ctx, limit, offset)
	l, _ := args.Get(0).([]*entity.Company)
	return l, args.Error(1)
}

// ── Comprobantes ──────────────────────────────────────────────────────────────

type ComprobanteRepository struct{ mock.Mock }

func (m *ComprobanteRepository) Insert(ctx context.Context, c *entity.Comprobante) (bool, error) {
	args := m.Called(ctx, c)
	return args.Bool(0), args.Error(1)
}

func (m *ComprobanteRepository) GetByID(ctx context.Context, companyID, id string) (*entity.Comprobante, error) {
	args := m.Called(ctx, companyID, id)
	c, _ := args.Get(0).(*entity.Comprobante)
	return c, args.Error(1)
}

func (m *ComprobanteRepository) List(ctx context.Context, companyID string, f entity.ComprobanteFilter) ([]*entity.Comprobante, int, error) {
	args := m.Called(ctx, companyID, f)
	l, _ := args.Get(0).([]*entity.Comprobante)
	return l, args.Int(1), args.Error(2)
}

func (m *ComprobanteRepository) ListByPeriod(ctx context.Context, companyID, period string) ([]*entity.Comprobante, error) {
	args := m.Called(ctx, companyID, period)
	l, _ := args.Get(0).([]*entity.Comprobante)
	return l, args.Error(1)
}

func (m *ComprobanteRepository) SoftDelete(ctx context.Context, companyID, id string) error {
	return m.Called(ctx, companyID, id).Error(0)
}

func (m *ComprobanteRepository) StorageBytes(ctx context.Context, companyID string) (int64, int, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(int64), args.Int(1), args.Error(2)
}

// ── Alerts ────────────────────────────────────────────────────────────────────

type AlertRepository struct{ mock.Mock }

func (m *AlertRepository) Create(ctx context.Context, cfg *entity.AlertConfig) error {
	return m.Called(ctx, cfg).Error(0)
}

func (m *AlertRepository) Update(ctx context.Context, cfg *entity.AlertConfig) error {
	return m.Called(ctx, cfg).Error(0)
}

func (m *AlertRepository) GetByID(ctx context.Context, companyID, id string) (*entity.AlertConfig, error) {
	args := m.Called(ctx, companyID, id)
	c, _ := args.Get(0).(*entity.AlertConfig)
	return c, args.Error(1)
}

func (m *AlertRepository) ListByCompany(ctx context.Context, companyID string) ([]*entity.AlertConfig, error) {
	args := m.Called(ctx, companyID)
	l, _ := args.Get(0).([]*entity.AlertConfig)
	return l, args.Error(1)
}

func (m *AlertRepository) ListActive(ctx context.Context) ([]*entity.AlertConfig, error) {
	args := m.Called(ctx)
	l, _ := args.Get(0).([]*entity.AlertConfig)
	return l, args.Error(1)
}

func (m *AlertRepository) Delete(ctx context.Context, companyID, id string) error {
	return m.Called(ctx, companyID, id).Error(0)
}

func (m *AlertRepository) RecordMatch(ctx context.Context, am *entity.AlertMatch) (bool, error) {
	args := m.Called(ctx, am)
	return args.Bool(0), args.Error(1)
}

func (m *AlertRepository) MarkNotified(ctx context.Context, matchID string, at time.Time) error {
	return m.Called(ctx, matchID, at).Error(0)
}

func (m *AlertRepository) ListMatches(ctx context.Context, companyID string, limit, offset int) ([]*entity.AlertMatch, error) {
	args := m.Called(ctx, companyID, limit, offset)
	l, _ := args.Get(0).([]*entity.AlertMatch)
	return l, args.Error(1)
}

type TenderRepository struct{ mock.Mock }

func (m *TenderRepository) Upsert(ctx context.Context, t *entity.Tender) error {
	return m.Called(ctx, t).Error(0)
}

func (m *TenderRepository) ListPublishedSince(ctx context.Context, since time.Time) ([]*entity.Tender, error) {
	args := m.Called(ctx, since)
	l, _ := args.Get(0).([]*entity.Tender)
	return l, args.Error(1)
}

func (m *TenderRepository) GetByID(ctx context.Context, id string) (*entity.Tender, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*entity.Tender)
	return t, args.Error(1)
}

// ── Settings ──────────────────────────────────────────────────────────────────

type SettingsRepository struct{ mock.Mock }

func (m *SettingsRepository) Get(ctx context.Context, key string) (json.RawMessage, error) {
	args := m.Called(ctx, key)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}

func (m *SettingsRepository) Put(ctx context.Context, key string, value json.RawMessage) error {
	return m.Called(ctx, key, value).Error(0)
}

// ── Products ──────────────────────────────────────────────────────────────────

type ProductRepository struct{ mock.Mock }

func (m *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *ProductRepository) GetByID(ctx context.Context, companyID, id string) (*entity.Product, error) {
	args := m.Called(ctx, companyID, id)
	p, _ := args.Get(0).(*entity.Product)
	return p, args.Error(1)
}

func (m *ProductRepository) GetForUpdate(ctx context.Context, companyID, id string) (*entity.Product, error) {
	args := m.Called(ctx, companyID, id)
	p, _ := args.Get(0).(*entity.Product)
	return p, args.Error(1)
}

func (m *ProductRepository) ListByCompany(ctx context.Context, companyID string) ([]*entity.Product, error) {
	args := m.Called(ctx, companyID)
	l, _ := args.Get(0).([]*entity.Product)
	return l, args.Error(1)
}

func (m *ProductRepository) Delete(ctx context.Context, companyID, id string) error {
	return m.Called(ctx, companyID, id).Error(0)
}
