package cli

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"time"

	"otpsecret/internal/audit"
	"otpsecret/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type GlobalOptions struct {
	CfgFilePath  string
	LogLevel     string
	Format       formatValue
	AuditEnabled bool

	Logger  *logrus.Logger
	Conf    *config.Config
	Auditor audit.Auditor

	// secure random source, crypto/rand outside of tests
	Entropy io.Reader
	Now     func() time.Time
}

func NewRootCMD() *cobra.Command {
	return newRootCMD(&GlobalOptions{
		Entropy: rand.Reader,
		Now:     time.Now,
	})
}

func newRootCMD(globalOptions *GlobalOptions) *cobra.Command {

	rootCMD := &cobra.Command{
		Use:   "otpsecret",
		Short: "Generate an OTP_SECRET",
		Long: `Generates a 256 bit random secret, rendered as 64 lowercase hex characters,
and prints guidance for adding it to the deployment platform's environment variables.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return globalOptions.initializeConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, globalOptions)
		},
	}

	// register global flags
	globalOptions.registerFlags(rootCMD)

	// add subcommands
	rootCMD.AddCommand(NewCheckCommand(globalOptions))
	rootCMD.AddCommand(NewInitCommand(globalOptions))

	return rootCMD
}

func (options *GlobalOptions) registerFlags(cmd *cobra.Command) {
	// flags that can be used for each command
	cmd.PersistentFlags().StringVar(&options.CfgFilePath, "config_path", defaultConfigPath, "Path to the configuration file. (Env: OTPSECRET_CONFIG_PATH)")
	cmd.PersistentFlags().StringVar(&options.LogLevel, "log-level", "", "Logging level (trace, debug, info, warn, error). (Env: OTPSECRET_LOG_LEVEL)")
	cmd.PersistentFlags().Var(&options.Format, "format", "Output format (text, json). (Env: OTPSECRET_FORMAT)")
	cmd.PersistentFlags().BoolVar(&options.AuditEnabled, "audit-enabled", false, "Log an audit event for every generated or checked secret. (Env: OTPSECRET_AUDIT_ENABLED=true)")
}

func Execute() {

	rootCmd := NewRootCMD()

	// Run the command based on os.Args
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
