package cli

import (
	"fmt"

	"otpsecret/internal/audit"
	"otpsecret/internal/config"
	"otpsecret/internal/report"
	"otpsecret/internal/secret"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"
)

// runGenerate is the default action: generate, validate and print one secret.
func runGenerate(cmd *cobra.Command, globalOptions *GlobalOptions) error {
	logger := globalOptions.Logger
	conf := globalOptions.Conf

	s, err := secret.Generate(globalOptions.Entropy)
	if err != nil {
		return fmt.Errorf("failed to generate %s: %w", conf.Deploy.Variable, err)
	}

	at := globalOptions.Now()
	g := report.Generation{
		ID:          ulid.MustNew(ulid.Timestamp(at), ulid.DefaultEntropy()).String(),
		GeneratedAt: at.UTC(),
		Variable:    conf.Deploy.Variable,
		Secret:      s,
		Length:      len(s),
		Format:      secret.Format,
		Valid:       secret.Validate(s.String()),
		Fingerprint: secret.Fingerprint(s.String()),
		Platform:    conf.Deploy.Platform,
		App:         conf.Deploy.App,
		Rerun:       cmd.CommandPath(),
	}

	// never log the value itself
	entry := logger.WithField("id", g.ID).WithField("fingerprint", g.Fingerprint)
	if g.Valid {
		entry.Info("Secret generated")
	} else {
		entry.Error("Generated secret failed the shape check")
	}

	globalOptions.Auditor.Log(cmd.Context(), audit.ActionGenerate, audit.CurrentActor(), g.Variable, map[string]interface{}{
		"id":          g.ID,
		"fingerprint": g.Fingerprint,
		"valid":       g.Valid,
	})

	out := cmd.OutOrStdout()
	if conf.Output.Format == config.FormatJSON {
		return report.WriteGenerationJSON(out, g)
	}
	return report.WriteGeneration(out, g)
}
