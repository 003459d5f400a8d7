package bootstrap

import "context"

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

// AuditLogger mencatat kejadian level proses (startup, shutdown). Implementasi
// default menulis ke stdout lewat zap; sink lain tinggal mengganti interface.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
