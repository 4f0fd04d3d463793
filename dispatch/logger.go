package dispatch

// Logger is an optional logging interface the Dispatcher reports
// through. It lets the core stay independent of any particular
// logging framework; callers wire in whatever they already use.
//
// Example with logrus:
//
//	type logrusAdapter struct{ l *logrus.Logger }
//	func (a logrusAdapter) Debug(msg string, kv ...interface{}) { a.l.WithFields(fields(kv)).Debug(msg) }
//	func (a logrusAdapter) Info(msg string, kv ...interface{})  { a.l.WithFields(fields(kv)).Info(msg) }
//	func (a logrusAdapter) Error(msg string, kv ...interface{}) { a.l.WithFields(fields(kv)).Error(msg) }
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
