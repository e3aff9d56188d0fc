package extensions

import (
	"go.uber.org/zap"

	owned "github.com/pumped-fn/owned-go"
)

// LifecycleLogger logs every ownership event structurally
type LifecycleLogger struct {
	owned.BaseObserver
	log *zap.Logger
}

// NewLifecycleLogger creates an observer that logs lifecycle events to
// the given zap logger
func NewLifecycleLogger(log *zap.Logger) *LifecycleLogger {
	return &LifecycleLogger{
		BaseObserver: owned.NewBaseObserver("lifecycle-logger"),
		log:          log,
	}
}

func (l *LifecycleLogger) handleFields(h owned.AnyHandle) []zap.Field {
	return []zap.Field{
		zap.String("kind", string(h.Kind())),
		zap.String("label", h.Label()),
		zap.String("entity", h.Identity().String()),
	}
}

func (l *LifecycleLogger) OnCreate(h owned.AnyHandle) {
	l.log.Info("value came under ownership", l.handleFields(h)...)
}

func (l *LifecycleLogger) OnClone(h owned.AnyHandle, owners int64) {
	l.log.Info("co-owner added", append(l.handleFields(h), zap.Int64("owners", owners))...)
}

func (l *LifecycleLogger) OnMove(from, to owned.AnyHandle) {
	l.log.Info("ownership transferred", l.handleFields(to)...)
}

func (l *LifecycleLogger) OnRelease(h owned.AnyHandle, remaining int64) {
	l.log.Info("owner released", append(l.handleFields(h), zap.Int64("remaining", remaining))...)
}

func (l *LifecycleLogger) OnDestroy(h owned.AnyHandle) {
	l.log.Info("value destroyed", l.handleFields(h)...)
}

func (l *LifecycleLogger) OnCastFail(h owned.AnyHandle, want string) {
	l.log.Warn("checked downcast missed", append(l.handleFields(h), zap.String("want", want))...)
}
