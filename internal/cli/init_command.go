package cli

import (
	"errors"
	"fmt"

	"otpsecret/internal/config"
	"otpsecret/internal/shared"

	"github.com/spf13/cobra"
)

type InitOptions struct {
	Force bool // overwrite an existing file
}

func NewInitCommand(globalOptions *GlobalOptions) *cobra.Command {

	initOptions := &InitOptions{}

	initCommand := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file",
		Long: `Writes the effective configuration (defaults, environment and flags) to --config_path.
Refuses to overwrite an existing file unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, globalOptions, initOptions)
		},
	}

	initOptions.registerFlags(initCommand)

	return initCommand
}

func (opt *InitOptions) registerFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&opt.Force, "force", false, "Overwrite an existing configuration file.")
}

func runInit(cmd *cobra.Command, globalOptions *GlobalOptions, initOptions *InitOptions) error {
	path := globalOptions.CfgFilePath

	if initOptions.Force {
		if err := config.SaveConfig(path, globalOptions.Conf); err != nil {
			return err
		}
	} else if err := config.CreateConfig(path, globalOptions.Conf); err != nil {
		if errors.Is(err, shared.ErrConfigExists) {
			return fmt.Errorf("%w (use --force to overwrite)", err)
		}
		return err
	}

	globalOptions.Logger.Infof("Configuration written to %s", path)
	fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)
	return nil
}
