package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/gnolang/qcheck/runner"
)

var (
	initFields []string
	initForce  bool
)

// initCmd: qcheck init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfigurationFile(cfgFile, initFields, initForce); err != nil {
			return fmt.Errorf("error initializing config file: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created/updated: %s\n", cfgFile)
		return nil
	},
}

func init() {
	initCmd.Flags().StringSliceVar(&initFields, "fields", nil, "Allowed field names to write into the configuration")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing configuration file")
}

func initConfigurationFile(configurationPath string, fields []string, force bool) error {
	if configurationPath == "" {
		configurationPath = runner.DefaultConfigPath
	}

	if !force {
		if _, err := os.Stat(configurationPath); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", configurationPath)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	config := runner.DefaultConfig()
	config.Fields = fields
	return runner.WriteConfig(configurationPath, config)
}
