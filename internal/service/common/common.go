// Package common holds helpers shared by every service package: translating
// storage errors into client-facing codes and reporting security events.
package common

import (
	"context"

	"go.uber.org/zap"

	"github.com/SidS12345/Family-Connections/internal/infrastructure/metrics"
	"github.com/SidS12345/Family-Connections/internal/infrastructure/mq"
	"github.com/SidS12345/Family-Connections/pkg/errorx"
)

// DBError converts a repository error into a client-facing error.
// Missing rows become CodeNotFound with notFoundMsg; business errors pass
// through; anything else is logged and hidden behind ErrServerBusy.
func DBError(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	if errorx.IsNotFound(err) {
		return errorx.Wrap(err, errorx.CodeNotFound, notFoundMsg)
	}
	switch errorx.GetCode(err) {
	case errorx.CodeDBError, errorx.CodeCacheError, errorx.CodeServerBusy:
		zap.L().Error("storage failure", zap.Error(err))
		return errorx.ErrServerBusy
	}
	return err
}

// Invalid builds a validation error.
func Invalid(msg string) error {
	return errorx.New(errorx.CodeInvalidParam, msg)
}

// Auditor reports security-relevant outcomes and domain events.
type Auditor struct {
	publisher mq.Publisher
}

// NewAuditor returns an Auditor publishing to p. A nil p drops events.
func NewAuditor(p mq.Publisher) *Auditor {
	if p == nil {
		p = mq.NopPublisher{}
	}
	return &Auditor{publisher: p}
}

// Forbidden records a rejected permission check and returns the error to
// surface to the caller.
func (a *Auditor) Forbidden(ctx context.Context, operation string, actorID, entityID uint, reason string) error {
	zap.L().Warn("forbidden operation",
		zap.String("operation", operation),
		zap.Uint("actor_id", actorID),
		zap.Uint("entity_id", entityID),
		zap.String("reason", reason),
	)
	metrics.Forbidden.WithLabelValues(operation).Inc()
	a.Publish(ctx, mq.NewEvent(mq.EventForbidden, actorID, 0, entityID).
		With("operation", operation).
		With("reason", reason))
	return errorx.New(errorx.CodeForbidden, reason)
}

// Publish emits event; delivery failures are logged, never returned.
func (a *Auditor) Publish(ctx context.Context, event mq.Event) {
	if err := a.publisher.Publish(ctx, event); err != nil {
		zap.L().Warn("publish event failed", zap.String("type", string(event.Type)), zap.Error(err))
	}
}
