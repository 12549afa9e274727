package commands

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/telcocentric/hudu-go/pkg/hudu"
	"golang.org/x/term"
)

// NewAssetPasswordsCommand creates the passwords command group.
func NewAssetPasswordsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "passwords",
		Aliases: []string{"password", "asset-passwords"},
		Short:   "Manage passwords",
		Long:    "List, inspect, and create standalone or asset-scoped passwords",
	}

	cmd.AddCommand(newAssetPasswordsListCommand())
	cmd.AddCommand(newAssetPasswordsGetCommand())
	cmd.AddCommand(newAssetPasswordsCreateCommand())

	return cmd
}

func newAssetPasswordsListCommand() *cobra.Command {
	var (
		name      string
		companyID int
		search    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List passwords",
		Long:  "List passwords, optionally filtered by name, company, or a search term. Secrets are masked in table output.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			filter := &hudu.AssetPasswordFilter{
				Name:      name,
				CompanyID: companyID,
				Search:    search,
			}

			passwords, err := client.AssetPasswords().List(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to list passwords: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return renderJSON(passwords)
			case OutputFormatYAML:
				return renderYAML(passwords)
			default:
				if len(passwords) == 0 {
					_, _ = os.Stdout.WriteString("No passwords found\n")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Username", "Company", "Asset")
				for _, password := range passwords {
					asset := ""
					if password.PasswordableID != 0 {
						asset = fmt.Sprintf("%d", password.PasswordableID)
					}

					_ = table.Append(
						fmt.Sprintf("%d", password.ID),
						password.Name,
						password.Username,
						fmt.Sprintf("%d", password.CompanyID),
						asset,
					)
				}

				_ = table.Render()
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "filter by exact name")
	cmd.Flags().IntVar(&companyID, "company", 0, "filter by company id")
	cmd.Flags().StringVar(&search, "search", "", "filter by search term")

	return cmd
}

func newAssetPasswordsGetCommand() *cobra.Command {
	var reveal bool

	cmd := &cobra.Command{
		Use:   "get PASSWORD_ID",
		Short: "Get a password",
		Long:  "Display a single password entry. The secret is masked unless --reveal is set.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			passwordID, err := parseResourceID(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			password, err := client.AssetPasswords().Get(ctx, passwordID)
			if err != nil {
				return fmt.Errorf("failed to get password: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return renderJSON(password)
			case OutputFormatYAML:
				return renderYAML(password)
			default:
				secret := "***"
				if reveal {
					secret = password.Password
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("ID", fmt.Sprintf("%d", password.ID))
				_ = table.Append("Name", password.Name)
				_ = table.Append("Username", password.Username)
				_ = table.Append("Password", secret)
				_ = table.Append("Company", fmt.Sprintf("%d", password.CompanyID))
				_ = table.Append("URL", password.URL)
				_ = table.Append("Description", password.Description)
				_ = table.Append("Created", formatTime(password.CreatedAt))
				_ = table.Append("Updated", formatTime(password.UpdatedAt))
				_ = table.Render()
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&reveal, "reveal", false, "print the secret in table output")

	return cmd
}

// promptForSecret reads a secret from the terminal without echo.
func promptForSecret(prompt string) (string, error) {
	_, _ = fmt.Fprint(os.Stderr, prompt)

	secret, err := term.ReadPassword(int(syscall.Stdin))

	_, _ = fmt.Fprintln(os.Stderr)

	if err != nil {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}

	return string(secret), nil
}

func newAssetPasswordsCreateCommand() *cobra.Command {
	var (
		name      string
		username  string
		password  string
		companyID int
		assetID   int
		url       string
		otpSecret string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a password",
		Long: `Create a password entry. When --password is omitted the secret is
prompted for on the terminal without echo. Use --asset to attach the
entry to an asset.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return ErrNameRequired
			}

			if companyID == 0 {
				return ErrCompanyRequired
			}

			if password == "" {
				var err error

				password, err = promptForSecret("Password: ")
				if err != nil {
					return err
				}

				if password == "" {
					return ErrPasswordRequired
				}
			}

			request := &hudu.AssetPasswordCreateRequest{
				Name:      name,
				Username:  username,
				Password:  password,
				CompanyID: companyID,
			}
			if assetID != 0 {
				passwordableType := "Asset"
				request.PasswordableType = &passwordableType
				request.PasswordableID = &assetID
			}
			if url != "" {
				request.URL = &url
			}
			if otpSecret != "" {
				request.OTPSecret = &otpSecret
			}

			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			created, err := client.AssetPasswords().Create(ctx, request)
			if err != nil {
				return fmt.Errorf("failed to create password: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Successfully created password '%s' with ID %d\n", created.Name, created.ID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "password name (required)")
	cmd.Flags().StringVarP(&username, "username", "u", "", "username for the entry")
	cmd.Flags().StringVarP(&password, "password", "p", "", "secret value (prompted when omitted)")
	cmd.Flags().IntVar(&companyID, "company", 0, "company the entry belongs to (required)")
	cmd.Flags().IntVar(&assetID, "asset", 0, "attach the entry to an asset")
	cmd.Flags().StringVar(&url, "url", "", "URL the credential applies to")
	cmd.Flags().StringVar(&otpSecret, "otp-secret", "", "TOTP seed for the entry")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("company")

	return cmd
}
