package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
	"github.com/telcocentric/hudu-go/pkg/hudu"
	"github.com/telcocentric/hudu-go/pkg/huduclient"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

// Common static errors used throughout the commands package.
var (
	ErrCompanyRequired     = errors.New("company is required (use --company)")
	ErrLayoutRequired      = errors.New("asset layout is required (use --layout)")
	ErrNameRequired        = errors.New("name is required (use --name)")
	ErrContentRequired     = errors.New("content is required (use --content or --content-file)")
	ErrPasswordRequired    = errors.New("password is required (use --password or stdin prompt)")
	ErrInvalidResourceID   = errors.New("resource id must be a positive integer")
	ErrInvalidFieldFlag    = errors.New("invalid field flag")
	ErrInvalidConfigKey    = errors.New("unknown configuration key")
	ErrUnknownLookupTable  = errors.New("unknown lookup table (companies or asset-layouts)")
	ErrLookupNameOrID      = errors.New("exactly one of a name or a numeric id is required")
	ErrConfigValueRequired = errors.New("a value is required")
)

// createClient builds a Hudu client from the viper-resolved flags,
// config file, and environment.
func createClient(ctx context.Context) (hudu.Client, error) {
	config := &hudu.Config{
		Domain:     viper.GetString("domain"),
		APIKey:     viper.GetString("api_key"),
		APIVersion: viper.GetString("api_version"),
	}

	client, err := huduclient.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Hudu client: %w", err)
	}

	return client, nil
}

// createClientWithLookups builds a client that also constructs the
// companies and asset-layouts name/id tables during startup.
func createClientWithLookups(ctx context.Context) (hudu.Client, error) {
	config := &hudu.Config{
		Domain:            viper.GetString("domain"),
		APIKey:            viper.GetString("api_key"),
		APIVersion:        viper.GetString("api_version"),
		BuildLookupTables: true,
	}

	client, err := huduclient.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Hudu client: %w", err)
	}

	return client, nil
}

// renderJSON writes data to stdout as indented JSON.
func renderJSON(data interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding to JSON: %w", err)
	}

	return nil
}

// renderYAML writes data to stdout as YAML.
func renderYAML(data interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding to YAML: %w", err)
	}

	return nil
}

// parseResourceID parses a positional id argument.
func parseResourceID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidResourceID, arg)
	}

	return id, nil
}

// formatTime renders a timestamp for table output, blank when unset.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format(time.RFC3339)
}

// formatIntPtr renders an optional id for table output.
func formatIntPtr(v *int) string {
	if v == nil {
		return ""
	}

	return strconv.Itoa(*v)
}

// formatBool renders a boolean for table output.
func formatBool(v bool) string {
	return strconv.FormatBool(v)
}
