package cli

import (
	"fmt"
	"os"
	"time"

	"otpsecret/internal/audit"
	"otpsecret/internal/config"
	"otpsecret/internal/report"
	"otpsecret/internal/secret"
	"otpsecret/internal/shared"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type CheckOptions struct {
	EnvFile string        // .env file read before the process environment
	Secret  string        // explicit value, skips env lookup
	Step    time.Duration // sample code time step
}

func NewCheckCommand(globalOptions *GlobalOptions) *cobra.Command {

	checkOptions := &CheckOptions{}

	checkCommand := &cobra.Command{
		Use:   "check",
		Short: "Check an existing secret",
		Long: `Reads the configured variable (default OTP_SECRET) from --secret, a .env file or the
environment and reports whether it has the expected shape. The value itself is never printed.
Exits with status 1 when the secret is missing or invalid.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			checkOptions.registerEnvVars()
			return runCheck(cmd, globalOptions, checkOptions)
		},
	}

	checkOptions.registerFlags(checkCommand)

	return checkCommand
}

func (opt *CheckOptions) registerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&opt.EnvFile, "env-file", "", "Path to a .env file to read the secret from. (Env: OTPSECRET_ENV_FILE)")
	cmd.Flags().StringVar(&opt.Secret, "secret", "", "Secret to check instead of reading the environment.")
	cmd.Flags().DurationVar(&opt.Step, "step", secret.DefaultStep, "Time step of the sample code.")
}

// In case a variable was not defined in the cli arguments, we check for env variables
func (opt *CheckOptions) registerEnvVars() {
	if opt.EnvFile == "" {
		opt.EnvFile = os.Getenv("OTPSECRET_ENV_FILE")
	}
}

// lookupSecret returns the value to check and a description of where it came from.
func (opt *CheckOptions) lookupSecret(variable string) (string, string, error) {
	if opt.Secret != "" {
		return opt.Secret, "flag", nil
	}
	if opt.EnvFile != "" {
		values, err := godotenv.Read(opt.EnvFile)
		if err != nil {
			return "", "", fmt.Errorf("failed to read %s: %w", opt.EnvFile, err)
		}
		if v, ok := values[variable]; ok {
			return v, opt.EnvFile, nil
		}
	}
	return os.Getenv(variable), "environment", nil
}

func runCheck(cmd *cobra.Command, globalOptions *GlobalOptions, checkOptions *CheckOptions) error {
	logger := globalOptions.Logger
	conf := globalOptions.Conf
	variable := conf.Deploy.Variable

	value, source, err := checkOptions.lookupSecret(variable)
	if err != nil {
		return err
	}

	in := secret.Inspect(value)
	c := report.Check{
		Variable:   variable,
		Source:     source,
		Inspection: in,
		Valid:      in.Valid(),
		CheckedAt:  globalOptions.Now().UTC(),
	}
	if c.Valid {
		code, err := secret.SampleCode(secret.Secret(value), globalOptions.Now(), checkOptions.Step)
		if err != nil {
			return fmt.Errorf("failed to derive sample code: %w", err)
		}
		c.SampleCode = code
	}

	logger.WithField("source", source).
		WithField("fingerprint", in.Fingerprint).
		WithField("valid", c.Valid).
		Info("Secret checked")

	globalOptions.Auditor.Log(cmd.Context(), audit.ActionCheck, audit.CurrentActor(), variable, map[string]interface{}{
		"source":      source,
		"fingerprint": in.Fingerprint,
		"valid":       c.Valid,
	})

	out := cmd.OutOrStdout()
	if conf.Output.Format == config.FormatJSON {
		err = report.WriteCheckJSON(out, c)
	} else {
		err = report.WriteCheck(out, c)
	}
	if err != nil {
		return err
	}

	switch {
	case value == "":
		return fmt.Errorf("%s: %w", variable, shared.ErrSecretNotSet)
	case !c.Valid:
		return fmt.Errorf("%s: %w", variable, shared.ErrInvalidSecret)
	}
	return nil
}
