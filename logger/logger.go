package logger

import (
	"io"
	"log"
	"os"
)

var (
	// Info writes to stdout
	Info *log.Logger

	// Error writes to stderr
	Error *log.Logger
)

func init() {
	Info = log.New(os.Stdout, "", log.LstdFlags)
	Error = log.New(os.Stderr, "", log.LstdFlags)
}

// SetOutput redirects both loggers, mostly for tests.
func SetOutput(info, errw io.Writer) {
	Info.SetOutput(info)
	Error.SetOutput(errw)
}

// NewError returns a stderr logger tagged with a "[component] " prefix.
func NewError(component string) *log.Logger {
	return log.New(Error.Writer(), "["+component+"] ", log.LstdFlags)
}

// Printf writes a formatted line to stdout
func Printf(format string, v ...interface{}) {
	Info.Printf(format, v...)
}

// Errorf writes a formatted line to stderr
func Errorf(format string, v ...interface{}) {
	Error.Printf(format, v...)
}

// Fatalf logs to stderr and exits
func Fatalf(format string, v ...interface{}) {
	Error.Fatalf(format, v...)
}
