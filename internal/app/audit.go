package app

import (
	"go.uber.org/zap"

	"github.com/example/casebook/internal/ports/secondary"
)

// writeAudit records an audit entry through w when one is configured.
// Failures are logged, never returned: the mutation has already committed.
func writeAudit(logger *zap.Logger, w secondary.LogWriter, write func(secondary.LogWriter) error) {
	if w == nil {
		return
	}
	if err := write(w); err != nil {
		logger.Warn("failed to write audit entry", zap.Error(err))
	}
}
