package types

import "github.com/charlesren/ylog"

// Logger is the observability sink injected into drivers and adapters.
// Keeping it an interface avoids a process-wide logger singleton and lets
// tests run silent.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Debugf(string, ...interface{}) {}
func (NopLogger) Infof(string, ...interface{})  {}
func (NopLogger) Warnf(string, ...interface{})  {}
func (NopLogger) Errorf(string, ...interface{}) {}

// YLogger routes to the process ylog logger, tagged with a module name
// (one per device, e.g. "switch.lab-sw1"). Initialize ylog once in main
// with ylog.InitLogger before handing these out.
type YLogger struct {
	Module string
}

func (l YLogger) Debugf(format string, args ...interface{}) {
	ylog.Debugf(l.Module, format, args...)
}

func (l YLogger) Infof(format string, args ...interface{}) {
	ylog.Infof(l.Module, format, args...)
}

func (l YLogger) Warnf(format string, args ...interface{}) {
	ylog.Warnf(l.Module, format, args...)
}

func (l YLogger) Errorf(format string, args ...interface{}) {
	ylog.Errorf(l.Module, format, args...)
}
