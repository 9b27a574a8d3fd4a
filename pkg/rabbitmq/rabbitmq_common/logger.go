package rabbitmq_common

// Logger - key/value логгер уровня pkg, не зависящий от внутренних портов сервиса
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(err error, msg string, keysAndValues ...interface{})
}

type noopLogger struct{}

func (l *noopLogger) Debug(msg string, keysAndValues ...interface{})           {}
func (l *noopLogger) Info(msg string, keysAndValues ...interface{})            {}
func (l *noopLogger) Warn(msg string, keysAndValues ...interface{})            {}
func (l *noopLogger) Error(err error, msg string, keysAndValues ...interface{}) {}

// NewNoopLogger returns a logger that performs no operations.
func NewNoopLogger() Logger {
	return &noopLogger{}
}
