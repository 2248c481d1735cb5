package admin

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	ownerusecases "chatwarden/internal/application/owner/usecases"
	"chatwarden/internal/infrastructure/auth"
	"chatwarden/internal/infrastructure/config"
	"chatwarden/internal/infrastructure/database"
	"chatwarden/internal/infrastructure/repository"
	"chatwarden/internal/shared/logger"
)

var (
	login     string
	firstName string
	lastName  string
	email     string
	company   string
	language  string
	isAdmin   bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative commands",
	}

	cmd.AddCommand(newCreateUserCommand())

	return cmd
}

func newCreateUserCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create an owner account",
		Long:  `Create an owner account, prompting for the password on the terminal. Use --admin to grant administrative access.`,
		RunE:  runCreateUser,
	}

	cmd.Flags().StringVar(&login, "login", "", "Account login (required)")
	cmd.Flags().StringVar(&firstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&company, "company", "", "Company name")
	cmd.Flags().StringVar(&language, "language", "en", "Language code (en, ru)")
	cmd.Flags().BoolVar(&isAdmin, "admin", false, "Grant admin access")
	_ = cmd.MarkFlagRequired("login")

	return cmd
}

func runCreateUser(cmd *cobra.Command, args []string) error {
	password, err := promptPassword()
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	log := logger.NewLogger()
	ownerRepo := repository.NewOwnerRepository(database.Get(), log)
	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)

	createUC := ownerusecases.NewCreateOwnerUseCase(ownerRepo, hasher, log)
	result, err := createUC.Execute(context.Background(), ownerusecases.CreateOwnerCommand{
		Login:        login,
		Password:     password,
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		Company:      company,
		LanguageCode: language,
		IsAdmin:      isAdmin,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("user %q created (id %d, admin: %v)\n", result.Login, result.ID, result.IsAdmin)
	return nil
}

// promptPassword reads the password twice without echo.
func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	first, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Fprint(os.Stderr, "Confirm password: ")
	second, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if string(first) != string(second) {
		return "", fmt.Errorf("passwords do not match")
	}
	return string(first), nil
}
