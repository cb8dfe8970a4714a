package main

import (
	"errors"
	"fmt"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/leave-backend-go/internal/repository/postgresql"
	userService "github.com/cmlabs-hris/leave-backend-go/internal/service/user"
	"github.com/spf13/cobra"
)

var adminFlags struct {
	email     string
	password  string
	firstName string
	lastName  string
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an administrator account",
	RunE:  runCreateAdmin,
}

func init() {
	createAdminCmd.Flags().StringVar(&adminFlags.email, "email", "", "admin email address")
	createAdminCmd.Flags().StringVar(&adminFlags.password, "password", "", "admin password (at least 8 characters)")
	createAdminCmd.Flags().StringVar(&adminFlags.firstName, "first-name", "Admin", "admin first name")
	createAdminCmd.Flags().StringVar(&adminFlags.lastName, "last-name", "User", "admin last name")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
}

func runCreateAdmin(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB(cmd, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	req := user.CreateUserRequest{
		Email:     adminFlags.email,
		Password:  adminFlags.password,
		FirstName: adminFlags.firstName,
		LastName:  adminFlags.lastName,
		Role:      string(user.RoleAdmin),
	}
	if err := req.Validate(); err != nil {
		return err
	}

	created, err := userService.NewUserService(postgresql.NewUserRepository(db), postgresql.NewTransactor(db)).Create(cmd.Context(), req)
	if errors.Is(err, user.ErrUserEmailExists) {
		return fmt.Errorf("an account with email %s already exists", req.Email)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created admin %s (%s)\n", created.Email, created.ID)
	return nil
}
