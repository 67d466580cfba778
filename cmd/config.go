package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/regexlens/internal/config"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration regexlens would run with, after merging defaults,
the config file and command-line flags.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented default config file",
	Long: `Write the default configuration, with every option documented, to the
path given by --config or to ~/.config/regexlens/config.yaml.`,
	Args: cobra.NoArgs,
	// The target file may not exist yet, so skip loading it.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	RunE:              runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	if configUsed != "" {
		_, _ = fmt.Fprintf(w, "# loaded from %s\n", configUsed)
	}
	_, _ = w.Write(out)
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := configPath()
	if path == "" {
		return fmt.Errorf("cannot determine config path, pass --config")
	}
	if fileExists(path) && !configForce {
		return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
	}
	if err := config.WriteDefaultConfig(path); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

// configPath is the file that writes go to: --config, then the file the
// config was loaded from, then the user config location.
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if configUsed != "" {
		return configUsed
	}
	return config.DefaultConfigPath()
}
