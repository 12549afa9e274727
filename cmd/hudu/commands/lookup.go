package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/telcocentric/hudu-go/pkg/hudu"
)

// Lookup table names accepted on the command line.
const (
	lookupTableCompanies    = "companies"
	lookupTableAssetLayouts = "asset-layouts"
)

// NewLookupCommand creates the lookup command group.
func NewLookupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Resolve names and ids",
		Long: `Resolve between names and ids using the companies and asset-layouts
lookup tables. The tables are built from the live instance on first use
and cached.`,
	}

	cmd.AddCommand(newLookupShowCommand())
	cmd.AddCommand(newLookupResolveCommand())

	return cmd
}

// lookupTableByName fetches the named table from a lookup-enabled client.
func lookupTableByName(client hudu.Client, tableName string) (*hudu.LookupTable, error) {
	switch tableName {
	case lookupTableCompanies:
		return client.CompanyLookup()
	case lookupTableAssetLayouts:
		return client.AssetLayoutLookup()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLookupTable, tableName)
	}
}

func newLookupShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show TABLE",
		Short: "Show a lookup table",
		Long:  "Display all entries of the companies or asset-layouts lookup table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClientWithLookups(ctx)
			if err != nil {
				return err
			}

			lookupTable, err := lookupTableByName(client, args[0])
			if err != nil {
				return err
			}

			entries := lookupTable.Entries()

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return renderJSON(entries)
			case OutputFormatYAML:
				return renderYAML(entries)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name")
				for _, entry := range entries {
					_ = table.Append(fmt.Sprintf("%d", entry.ID), entry.Name)
				}

				_ = table.Render()
			}

			return nil
		},
	}
}

func newLookupResolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve TABLE NAME_OR_ID",
		Short: "Resolve a single name or id",
		Long:  "Resolve a name to its id, or a numeric id to its name, using a lookup table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClientWithLookups(ctx)
			if err != nil {
				return err
			}

			lookupTable, err := lookupTableByName(client, args[0])
			if err != nil {
				return err
			}

			// A numeric argument resolves id to name, anything else
			// resolves name to id.
			if id, convErr := strconv.Atoi(args[1]); convErr == nil {
				name, err := lookupTable.Name(id)
				if err != nil {
					return fmt.Errorf("failed to resolve id %d: %w", id, err)
				}

				_, _ = fmt.Fprintln(os.Stdout, name)

				return nil
			}

			id, err := lookupTable.ID(args[1])
			if err != nil {
				return fmt.Errorf("failed to resolve name %q: %w", args[1], err)
			}

			_, _ = fmt.Fprintln(os.Stdout, id)

			return nil
		},
	}
}
