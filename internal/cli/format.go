package cli

import (
	"strings"

	"otpsecret/internal/config"

	"github.com/spf13/pflag"
)

// formatValue is the --format flag, rejected at parse time when unknown.
type formatValue string

var _ pflag.Value = (*formatValue)(nil)

func (f *formatValue) String() string { return string(*f) }

func (f *formatValue) Set(v string) error {
	v = strings.ToLower(strings.TrimSpace(v))
	if err := config.ValidateFormat(v); err != nil {
		return err
	}
	*f = formatValue(v)
	return nil
}

func (f *formatValue) Type() string { return "format" }
