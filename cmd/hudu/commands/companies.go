package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/telcocentric/hudu-go/pkg/hudu"
)

// NewCompaniesCommand creates the companies command group.
func NewCompaniesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "companies",
		Aliases: []string{"company"},
		Short:   "Manage companies",
		Long:    "List and inspect companies in the Hudu instance",
	}

	cmd.AddCommand(newCompaniesListCommand())
	cmd.AddCommand(newCompaniesGetCommand())

	return cmd
}

func newCompaniesListCommand() *cobra.Command {
	var (
		name   string
		search string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List companies",
		Long:  "List all companies, optionally filtered by name or a search term",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			filter := &hudu.CompanyFilter{
				Name:   name,
				Search: search,
			}

			companies, err := client.Companies().List(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to list companies: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return renderJSON(companies)
			case OutputFormatYAML:
				return renderYAML(companies)
			default:
				if len(companies) == 0 {
					_, _ = os.Stdout.WriteString("No companies found\n")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Nickname", "Website", "Phone")
				for _, company := range companies {
					_ = table.Append(
						fmt.Sprintf("%d", company.ID),
						company.Name,
						company.Nickname,
						company.Website,
						company.PhoneNumber,
					)
				}

				_ = table.Render()
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "filter by exact name")
	cmd.Flags().StringVar(&search, "search", "", "filter by search term")

	return cmd
}

func newCompaniesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get COMPANY_ID",
		Short: "Get a company",
		Long:  "Display a single company by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			companyID, err := parseResourceID(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			company, err := client.Companies().Get(ctx, companyID)
			if err != nil {
				return fmt.Errorf("failed to get company: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return renderJSON(company)
			case OutputFormatYAML:
				return renderYAML(company)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("ID", fmt.Sprintf("%d", company.ID))
				_ = table.Append("Name", company.Name)
				_ = table.Append("Nickname", company.Nickname)
				_ = table.Append("Website", company.Website)
				_ = table.Append("Phone", company.PhoneNumber)
				_ = table.Append("Notes", company.Notes)
				_ = table.Append("Created", formatTime(company.CreatedAt))
				_ = table.Append("Updated", formatTime(company.UpdatedAt))
				_ = table.Render()
			}

			return nil
		},
	}
}
