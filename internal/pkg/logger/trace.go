package logger

import (
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

type traceKey string

// TraceIDKey 定义 Context 中的 Key，同时也是日志字段名
const TraceIDKey = "trace_id"

const ctxTraceKey traceKey = TraceIDKey

// ContextHandler 包装器，用于从 ctx 中提取 trace_id
type ContextHandler struct {
	log.Handler
}

func (h *ContextHandler) Handle(ctx context.Context, r log.Record) error {
	if traceID := TraceIDFrom(ctx); traceID != "" {
		r.AddAttrs(log.String(TraceIDKey, traceID))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []log.Attr) log.Handler {
	return &ContextHandler{h.Handler.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) log.Handler {
	return &ContextHandler{h.Handler.WithGroup(name)}
}

// WithTraceID 将 trace_id 写入 ctx
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, ctxTraceKey, traceID)
}

// NewJobContext 定时任务使用，trace_id 形如 job-audience-<uuid>
func NewJobContext(prefix string) context.Context {
	return WithTraceID(context.Background(), "job-"+prefix+"-"+uuid.NewString())
}

func TraceIDFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if traceID, ok := ctx.Value(ctxTraceKey).(string); ok {
		return traceID
	}
	return ""
}
