package orchestrators

import (
	"context"
	"log/slog"

	"gymdesk/internal/domain/audit"
)

// AuditLog defines the append-only audit sink used by orchestrators.
type AuditLog interface {
	Append(ctx context.Context, event audit.Event) error
}

// recordAudit appends an event, logging instead of failing the command when
// the sink is unavailable. An audit miss must never roll back a write that
// already happened.
func recordAudit(ctx context.Context, log AuditLog, event audit.Event) {
	if log == nil {
		return
	}
	if err := log.Append(ctx, event); err != nil {
		slog.Warn("audit_event_dropped", "category", event.Category, "action", event.Action, "error", err)
	}
}
