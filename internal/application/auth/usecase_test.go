package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/contaperu/contaperu-api/internal/application/auth"
	"github.com/contaperu/contaperu-api/internal/application/dto"
	"github.com/contaperu/contaperu-api/internal/application/mocks"
	"github.com/contaperu/contaperu-api/internal/domain"
	"github.com/contaperu/contaperu-api/internal/domain/entity"
	"github.com/contaperu/contaperu-api/pkg/jwt"
)

const companyID = "7d1c9a3e-2b1f-4c55-9b8e-0f6a4e2d1c11"

var jwtCfg = auth.JWTConfig{Secret: "secreto-de-prueba", ExpMinutes: 60, Issuer: "contaperu-test"}

func TestRegisterUser_SiempreAsistente(t *testing.T) {
	users := new(mocks.UserRepository)
	companies := new(mocks.CompanyRepository)
	users.On("GetByEmail", mock.Anything, "ana@empresa.pe").Return(nil, nil)
	companies.On("GetByID", mock.Anything, companyID).Return(&entity.Company{ID: companyID}, nil)
	var saved *entity.User
	users.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*entity.User) }).
		Return(nil)

	out, err := auth.NewAuthUseCase(users, companies, jwtCfg).RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "Ana@Empresa.pe", Password: "clave-segura", CompanyID: companyID,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAsistente, out.Role)
	assert.Equal(t, "ana@empresa.pe", out.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte("clave-segura")))
}

func TestRegisterUser_EmailExistente(t *testing.T) {
	users := new(mocks.UserRepository)
	users.On("GetByEmail", mock.Anything, "ana@empresa.pe").Return(&entity.User{ID: "u1"}, nil)

	_, err := auth.NewAuthUseCase(users, nil, jwtCfg).RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "ana@empresa.pe", Password: "clave-segura", CompanyID: companyID,
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func usuario(t *testing.T, status string) *entity.User {
	hash, err := bcrypt.GenerateFromPassword([]byte("clave-segura"), bcrypt.MinCost)
	require.NoError(t, err)
	return &entity.User{ID: "u1", CompanyID: companyID, Email: "ana@empresa.pe", PasswordHash: string(hash), Role: entity.RoleContador, Status: status}
}

func TestLogin_TokenConRol(t *testing.T) {
	users := new(mocks.UserRepository)
	users.On("GetByEmail", mock.Anything, "ana@empresa.pe").Return(usuario(t, "active"), nil)

	out, err := auth.NewAuthUseCase(users, nil, jwtCfg).Login(context.Background(), dto.LoginRequest{Email: "ana@empresa.pe", Password: "clave-segura"})
	require.NoError(t, err)

	claims, err := jwt.Parse(jwtCfg.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, companyID, claims.CompanyID)
	assert.Equal(t, entity.RoleContador, claims.Role)
}

func TestLogin_MismoErrorParaUsuarioYPassword(t *testing.T) {
	users := new(mocks.UserRepository)
	users.On("GetByEmail", mock.Anything, "nadie@empresa.pe").Return(nil, nil)
	users.On("GetByEmail", mock.Anything, "ana@empresa.pe").Return(usuario(t, "active"), nil)
	uc := auth.NewAuthUseCase(users, nil, jwtCfg)

	_, err1 := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@empresa.pe", Password: "x"})
	_, err2 := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@empresa.pe", Password: "otra"})
	assert.ErrorIs(t, err1, domain.ErrUnauthorized)
	assert.ErrorIs(t, err2, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	users := new(mocks.UserRepository)
	users.On("GetByEmail", mock.Anything, "ana@empresa.pe").Return(usuario(t, "inactive"), nil)

	_, err := auth.NewAuthUseCase(users, nil, jwtCfg).Login(context.Background(), dto.LoginRequest{Email: "ana@empresa.pe", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
