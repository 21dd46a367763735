package bootstrap

import "context"

// AuditLog is a single operational audit entry. Meta carries free-form
// key/values specific to the action.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
