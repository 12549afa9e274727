package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/telcocentric/hudu-go/internal/constants"
	"gopkg.in/yaml.v3"
)

// Config represents the persisted CLI configuration.
type Config struct {
	Domain     string `json:"domain,omitempty"      yaml:"domain,omitempty"`
	APIKey     string `json:"api_key,omitempty"     yaml:"api_key,omitempty"`
	APIVersion string `json:"api_version,omitempty" yaml:"api_version,omitempty"`
	Output     string `json:"output,omitempty"      yaml:"output,omitempty"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage Hudu CLI configuration including the instance domain and API key",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func loadConfig() *Config {
	return &Config{
		Domain:     viper.GetString("domain"),
		APIKey:     viper.GetString("api_key"),
		APIVersion: viper.GetString("api_version"),
		Output:     viper.GetString("output"),
	}
}

// configFilePath returns the file the configuration is written to.
func configFilePath() (string, error) {
	if configFile := viper.ConfigFileUsed(); configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to find home directory: %w", err)
	}

	return filepath.Join(home, ".hudu", "config.yml"), nil
}

func saveConfig(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// The file holds the API key; keep it private to the owner.
	if err := os.WriteFile(configFile, data, constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// maskSecret hides all but a short prefix of a secret value.
func maskSecret(secret string) string {
	if secret == "" {
		return ""
	}

	const visible = 4
	if len(secret) <= visible {
		return "***"
	}

	return secret[:visible] + "***"
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current CLI configuration. The API key is masked in table output.",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return renderJSON(config)
			case OutputFormatYAML:
				return renderYAML(config)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Key", "Value")
				_ = table.Append("domain", config.Domain)
				_ = table.Append("api_key", maskSecret(config.APIKey))
				_ = table.Append("api_version", config.APIVersion)
				_ = table.Append("output", config.Output)
				_ = table.Render()
			}

			return nil
		},
	}
}

// applyConfigValue sets one configuration key on the config struct.
func applyConfigValue(config *Config, key, value string) error {
	switch key {
	case "domain":
		config.Domain = value
	case "api_key":
		config.APIKey = value
	case "api_version":
		config.APIVersion = value
	case "output":
		config.Output = value
	default:
		return fmt.Errorf("%w: %q", ErrInvalidConfigKey, key)
	}

	return nil
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY [VALUE]",
		Short: "Set a configuration value",
		Long: `Set a configuration value and persist it to the config file. Setting
api_key without a value prompts for it on the terminal without echo.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			var value string
			switch {
			case len(args) == 2:
				value = args[1]
			case key == "api_key":
				secret, err := promptForSecret("API key: ")
				if err != nil {
					return err
				}

				value = secret
			default:
				return fmt.Errorf("%w for key %q", ErrConfigValueRequired, key)
			}

			config := loadConfig()

			if err := applyConfigValue(config, key, value); err != nil {
				return err
			}

			if err := saveConfig(config); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Set %s\n", key)

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value and persist the change to the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			config := loadConfig()

			if err := applyConfigValue(config, key, ""); err != nil {
				return err
			}

			if err := saveConfig(config); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Unset %s\n", key)

			return nil
		},
	}
}
