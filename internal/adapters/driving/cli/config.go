package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	Long: `Prints the configuration after defaults, the config file, the .env file and
PRODSEARCH_ environment variables have been applied.`,
	Annotations: map[string]string{bootstrapAnnotation: bootstrapConfig},
	RunE:        runConfigShow,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if appConfig == nil {
		return fmt.Errorf("config %w", errNotConfigured)
	}

	data, err := appConfig.Encode()
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if appConfig.Path != "" {
		cmd.Printf("# %s\n", appConfig.Path)
	}
	cmd.Print(string(data))
	return nil
}
