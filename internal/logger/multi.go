package logger

import "github.com/harrison/intake/internal/models"

// MultiLogger fans every message out to several loggers
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger combines loggers; nil entries are skipped
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	ml := &MultiLogger{}
	for _, l := range loggers {
		if l != nil {
			ml.loggers = append(ml.loggers, l)
		}
	}
	return ml
}

func (m *MultiLogger) LogTrace(message string) {
	for _, l := range m.loggers {
		l.LogTrace(message)
	}
}

func (m *MultiLogger) LogDebug(message string) {
	for _, l := range m.loggers {
		l.LogDebug(message)
	}
}

func (m *MultiLogger) LogInfo(message string) {
	for _, l := range m.loggers {
		l.LogInfo(message)
	}
}

func (m *MultiLogger) LogWarn(message string) {
	for _, l := range m.loggers {
		l.LogWarn(message)
	}
}

func (m *MultiLogger) LogError(message string) {
	for _, l := range m.loggers {
		l.LogError(message)
	}
}

func (m *MultiLogger) LogValidation(source string, errs models.ErrorSet) {
	for _, l := range m.loggers {
		l.LogValidation(source, errs)
	}
}

func (m *MultiLogger) LogImport(source string, summary string) {
	for _, l := range m.loggers {
		l.LogImport(source, summary)
	}
}

func (m *MultiLogger) LogExport(path string, rows int) {
	for _, l := range m.loggers {
		l.LogExport(path, rows)
	}
}
