package dorothea

// Logger is implemented by the commands; the library only consumes it.
type Logger interface {
	Info(message string, module string)
	Error(string)
}

var logger Logger = noopLogger{}

func SetLogger(l Logger) {
	logger = l
}

type noopLogger struct{}

func (noopLogger) Info(string, string) {}

func (noopLogger) Error(string) {}
