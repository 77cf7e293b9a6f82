package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/contaperu/contaperu-api/internal/application/dto"
	"github.com/contaperu/contaperu-api/internal/application/usecase"
	"github.com/contaperu/contaperu-api/internal/domain/entity"
	"github.com/contaperu/contaperu-api/internal/infrastructure/postgres"
)

var companyCmd = &cobra.Command{Use: "company", Short: "Empresas"}

var companyCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Registrar una empresa (valida el RUC)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ruc, _ := cmd.Flags().GetString("ruc")
		name, _ := cmd.Flags().GetString("name")
		e, done, err := setup(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer done()
		out, err := usecase.NewCompanyUseCase(postgres.NewCompanyRepository(e.pool)).
			Create(cmd.Context(), dto.CreateCompanyRequest{RUC: ruc, RazonSocial: name})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out.ID)
		return nil
	},
}

var userCmd = &cobra.Command{Use: "user", Short: "Usuarios"}

// userCreateCmd es la única vía para crear un superadmin; la API no lo permite.
var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Crear un usuario con cualquier rol",
	RunE: func(cmd *cobra.Command, _ []string) error {
		companyID, _ := cmd.Flags().GetString("company")
		email, _ := cmd.Flags().GetString("email")
		name, _ := cmd.Flags().GetString("name")
		password, _ := cmd.Flags().GetString("password")
		role, _ := cmd.Flags().GetString("role")
		switch role {
		case entity.RoleSuperAdmin, entity.RoleAdmin, entity.RoleContador, entity.RoleAsistente:
		default:
			return fmt.Errorf("rol inválido: %q", role)
		}
		if len(password) < 8 {
			return fmt.Errorf("la contraseña debe tener al menos 8 caracteres")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		e, done, err := setup(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer done()
		now := time.Now()
		u := &entity.User{
			ID:           uuid.New().String(),
			CompanyID:    companyID,
			Email:        strings.ToLower(strings.TrimSpace(email)),
			PasswordHash: string(hash),
			Name:         strings.TrimSpace(name),
			Role:         role,
			Status:       "active",
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := postgres.NewUserRepository(e.pool).Create(cmd.Context(), u); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), u.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(companyCmd, userCmd)
	companyCmd.AddCommand(companyCreateCmd)
	userCmd.AddCommand(userCreateCmd)

	companyCreateCmd.Flags().String("ruc", "", "RUC de 11 dígitos")
	companyCreateCmd.Flags().String("name", "", "Razón social")
	_ = companyCreateCmd.MarkFlagRequired("ruc")
	_ = companyCreateCmd.MarkFlagRequired("name")

	userCreateCmd.Flags().String("company", "", "ID de la empresa")
	userCreateCmd.Flags().String("email", "", "Email")
	userCreateCmd.Flags().String("name", "", "Nombre")
	userCreateCmd.Flags().String("password", "", "Contraseña (mínimo 8)")
	userCreateCmd.Flags().String("role", entity.RoleAdmin, "superadmin | admin | contador | asistente")
	for _, f := range []string{"company", "email", "name", "password"} {
		_ = userCreateCmd.MarkFlagRequired(f)
	}
}
