package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/telcocentric/hudu-go/pkg/hudu"
)

// NewAssetLayoutsCommand creates the asset-layouts command group.
func NewAssetLayoutsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "asset-layouts",
		Aliases: []string{"asset-layout", "layouts"},
		Short:   "Manage asset layouts",
		Long:    "List, create, and update asset layouts, the templates assets are built from",
	}

	cmd.AddCommand(newAssetLayoutsListCommand())
	cmd.AddCommand(newAssetLayoutsGetCommand())
	cmd.AddCommand(newAssetLayoutsCreateCommand())
	cmd.AddCommand(newAssetLayoutsUpdateCommand())

	return cmd
}

func newAssetLayoutsListCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List asset layouts",
		Long:  "List all asset layouts, optionally filtered by name",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			layouts, err := client.AssetLayouts().List(ctx, &hudu.AssetLayoutFilter{Name: name})
			if err != nil {
				return fmt.Errorf("failed to list asset layouts: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return renderJSON(layouts)
			case OutputFormatYAML:
				return renderYAML(layouts)
			default:
				if len(layouts) == 0 {
					_, _ = os.Stdout.WriteString("No asset layouts found\n")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Icon", "Fields", "Active")
				for _, layout := range layouts {
					_ = table.Append(
						fmt.Sprintf("%d", layout.ID),
						layout.Name,
						layout.Icon,
						fmt.Sprintf("%d", len(layout.Fields)),
						formatBool(layout.Active),
					)
				}

				_ = table.Render()
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "filter by exact name")

	return cmd
}

func newAssetLayoutsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get LAYOUT_ID",
		Short: "Get an asset layout",
		Long:  "Display a single asset layout with its field definitions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layoutID, err := parseResourceID(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			layout, err := client.AssetLayouts().Get(ctx, layoutID)
			if err != nil {
				return fmt.Errorf("failed to get asset layout: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return renderJSON(layout)
			case OutputFormatYAML:
				return renderYAML(layout)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("ID", fmt.Sprintf("%d", layout.ID))
				_ = table.Append("Name", layout.Name)
				_ = table.Append("Icon", layout.Icon)
				_ = table.Append("Color", layout.Color)
				_ = table.Append("Active", formatBool(layout.Active))
				_ = table.Render()

				if len(layout.Fields) > 0 {
					_, _ = os.Stdout.WriteString("\nFields:\n")

					fieldsTable := tablewriter.NewWriter(os.Stdout)
					fieldsTable.Header("Label", "Type", "Required", "In List")
					for _, field := range layout.Fields {
						_ = fieldsTable.Append(
							field.Label,
							field.FieldType,
							formatBool(field.Required),
							formatBool(field.ShowInList),
						)
					}

					_ = fieldsTable.Render()
				}
			}

			return nil
		},
	}
}

// readLayoutFields reads field definitions from a JSON file.
func readLayoutFields(fieldsFile string) ([]hudu.LayoutField, error) {
	if fieldsFile == "" {
		return nil, nil
	}

	data, err := os.ReadFile(fieldsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read fields file: %w", err)
	}

	var fields []hudu.LayoutField

	err = json.Unmarshal(data, &fields)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fields file: %w", err)
	}

	return fields, nil
}

func newAssetLayoutsCreateCommand() *cobra.Command {
	var (
		name       string
		icon       string
		color      string
		iconColor  string
		fieldsFile string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an asset layout",
		Long:  "Create a new asset layout. Field definitions are read from a JSON file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return ErrNameRequired
			}

			fields, err := readLayoutFields(fieldsFile)
			if err != nil {
				return err
			}

			request := &hudu.AssetLayoutCreateRequest{
				Name:      name,
				Icon:      icon,
				Color:     color,
				IconColor: iconColor,
				Fields:    fields,
			}

			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			layout, err := client.AssetLayouts().Create(ctx, request)
			if err != nil {
				return fmt.Errorf("failed to create asset layout: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Successfully created asset layout '%s' with ID %d\n", layout.Name, layout.ID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "layout name (required)")
	cmd.Flags().StringVar(&icon, "icon", "fas fa-server", "layout icon")
	cmd.Flags().StringVar(&color, "color", "#3498db", "layout color")
	cmd.Flags().StringVar(&iconColor, "icon-color", "#ffffff", "icon color")
	cmd.Flags().StringVar(&fieldsFile, "fields-file", "", "JSON file with field definitions")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newAssetLayoutsUpdateCommand() *cobra.Command {
	var (
		name       string
		icon       string
		color      string
		iconColor  string
		fieldsFile string
	)

	cmd := &cobra.Command{
		Use:   "update LAYOUT_ID",
		Short: "Update an asset layout",
		Long:  "Update an existing asset layout. The full layout is required on update.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layoutID, err := parseResourceID(args[0])
			if err != nil {
				return err
			}

			if name == "" {
				return ErrNameRequired
			}

			fields, err := readLayoutFields(fieldsFile)
			if err != nil {
				return err
			}

			request := &hudu.AssetLayoutUpdateRequest{
				Name:      name,
				Icon:      icon,
				Color:     color,
				IconColor: iconColor,
				Fields:    fields,
			}

			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			layout, err := client.AssetLayouts().Update(ctx, layoutID, request)
			if err != nil {
				return fmt.Errorf("failed to update asset layout: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Successfully updated asset layout '%s'\n", layout.Name)

			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "layout name (required)")
	cmd.Flags().StringVar(&icon, "icon", "fas fa-server", "layout icon")
	cmd.Flags().StringVar(&color, "color", "#3498db", "layout color")
	cmd.Flags().StringVar(&iconColor, "icon-color", "#ffffff", "icon color")
	cmd.Flags().StringVar(&fieldsFile, "fields-file", "", "JSON file with field definitions")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
