// filepath: internal/audit/logger_auditor.go
package audit

import (
	"context"
	"io"
	"os/user"

	"otpsecret/internal/logging"

	"github.com/sirupsen/logrus"
)

// Auditor records who generated or checked a secret.
// Implementations must never receive the secret value itself.
type Auditor interface {
	Log(ctx context.Context, action string, actor string, resource string, details map[string]interface{})
}

// Ensure LoggerAuditor implements Auditor
var _ Auditor = (*LoggerAuditor)(nil)

// Audit actions.
const (
	ActionGenerate = "secret.generate"
	ActionCheck    = "secret.check"
)

// LoggerAuditor writes audit events as structured log lines.
type LoggerAuditor struct {
	enabled bool
	logger  *logrus.Logger
}

// NewLoggerAuditor creates a new instance of LoggerAuditor.
// Audit events are logged at info level independent of the application log level.
func NewLoggerAuditor(out io.Writer, enabled bool) *LoggerAuditor {
	return &LoggerAuditor{
		enabled: enabled,
		logger:  logging.NewLoggerTo(out, "info"),
	}
}

// Log records an event using logrus if auditing is enabled.
func (a *LoggerAuditor) Log(ctx context.Context, action string, actor string, resource string, details map[string]interface{}) {
	if !a.enabled {
		return
	}

	fields := logrus.Fields{
		"audit_action":   action,
		"audit_actor":    actor,
		"audit_resource": resource,
	}

	// Range over nil map is safe in Go, so explicit nil check is not needed.
	for k, v := range details {
		fields["detail."+k] = v
	}

	a.logger.WithContext(ctx).WithFields(fields).Info("AUDIT EVENT")
}

// CurrentActor is the OS user running the tool.
func CurrentActor() string {
	u, err := user.Current()
	if err != nil || u.Username == "" {
		return "unknown"
	}
	return u.Username
}
