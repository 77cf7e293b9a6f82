package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/contaperu/contaperu-api/internal/application/dto"
	"github.com/contaperu/contaperu-api/internal/application/mocks"
	"github.com/contaperu/contaperu-api/internal/application/usecase"
	"github.com/contaperu/contaperu-api/internal/domain"
	"github.com/contaperu/contaperu-api/internal/domain/entity"
)

func TestCompanyCreate_RUCValido(t *testing.T) {
	repo := new(mocks.CompanyRepository)
	repo.On("GetByRUC", mock.Anything, "20100070970").Return(nil, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	out, err := usecase.NewCompanyUseCase(repo).Create(context.Background(), dto.CreateCompanyRequest{
		RUC: "20100070970", RazonSocial: " SUPERMERCADOS PERUANOS S.A. ",
	})
	require.NoError(t, err)
	assert.Equal(t, "20100070970", out.RUC)
	assert.Equal(t, "SUPERMERCADOS PERUANOS S.A.", out.RazonSocial)
	assert.Equal(t, entity.CompanyStatusActive, out.Status)
}

func TestCompanyCreate_RUCInvalido(t *testing.T) {
	_, err := usecase.NewCompanyUseCase(new(mocks.CompanyRepository)).Create(context.Background(), dto.CreateCompanyRequest{
		RUC: "20100070971", RazonSocial: "X",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCompanyCreate_RUCDuplicado(t *testing.T) {
	repo := new(mocks.CompanyRepository)
	repo.On("GetByRUC", mock.Anything, "20100070970").Return(&entity.Company{ID: "c1"}, nil)

	_, err := usecase.NewCompanyUseCase(repo).Create(context.Background(), dto.CreateCompanyRequest{
		RUC: "20100070970", RazonSocial: "X",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUserGetByID_OtraEmpresaNoEncontrado(t *testing.T) {
	repo := new(mocks.UserRepository)
	repo.On("GetByID", mock.Anything, "u1").Return(&entity.User{ID: "u1", CompanyID: "c2"}, nil)

	_, err := usecase.NewUserUseCase(repo).GetByID(context.Background(), "c1", "u1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserCreate_RolNoPermitido(t *testing.T) {
	_, err := usecase.NewUserUseCase(new(mocks.UserRepository)).Create(context.Background(), "c1", dto.CreateUserRequest{
		Email: "a@b.pe", Password: "12345678", Name: "A", Role: "superadmin",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
