package universe

//Logger is the leveled logger used by the universe
type Logger interface {
	Debugf(format string, v ...interface{})
	Infof(format string, v ...interface{})
	Warnf(format string, v ...interface{})
	Errorf(format string, v ...interface{})
}

//NoOpLogger discards everything, it is the default logger of a new universe
type NoOpLogger struct{}

func (n NoOpLogger) Debugf(format string, v ...interface{}) {}
func (n NoOpLogger) Infof(format string, v ...interface{})  {}
func (n NoOpLogger) Warnf(format string, v ...interface{})  {}
func (n NoOpLogger) Errorf(format string, v ...interface{}) {}
