package logger

import (
	"fmt"
	"log"
	"os"
	"regexp"

	"github.com/mgutz/ansi"
)

const calldepth = 3

var (
	Silent           bool
	Verbose          bool
	Color            bool
	stdOutLogger     = log.New(os.Stdout, "", 0)
	stdOutWarnLogger = log.New(os.Stdout, "WARNING: ", 0)
	stdErrLogger     = log.New(os.Stderr, "ERROR: ", 0)
)

func StdErrOutput(b []byte) (n int, err error) {
	if Color {
		b = []byte(ansi.Color(string(b), "red"))
	}
	return os.Stderr.Write(b)
}

// io.Writer interface implementation. To use with error logs, pass StdErrOutput func:
// Writer(StdErrOutput) <- implements io.Writer
type Writer func(b []byte) (n int, err error)

func (w Writer) Write(b []byte) (n int, err error) {
	return w(b)
}

func Error(v ...interface{}) {
	logTo(stdErrLogger, "red", v...)
}

func Errorf(format string, v ...interface{}) {
	logfTo(stdErrLogger, "red", format, v...)
}

func Warn(v ...interface{}) {
	logTo(stdOutWarnLogger, "red+h", v...)
}

func Warnf(format string, v ...interface{}) {
	logfTo(stdOutWarnLogger, "red+h", format, v...)
}

func Heading(v ...interface{}) {
	if !Silent {
		logTo(stdOutLogger, "green", v...)
	}
}

func Headingf(format string, v ...interface{}) {
	if !Silent {
		logfTo(stdOutLogger, "green", format, v...)
	}
}

func Info(v ...interface{}) {
	if !Silent {
		logTo(stdOutLogger, "cyan", v...)
	}
}

func Infof(format string, v ...interface{}) {
	if !Silent {
		logfTo(stdOutLogger, "cyan", format, v...)
	}
}

func Debug(v ...interface{}) {
	if Verbose && !Silent {
		logTo(stdOutLogger, "white+d", v...)
	}
}

func Debugf(format string, v ...interface{}) {
	if Verbose && !Silent {
		logfTo(stdOutLogger, "white+d", format, v...)
	}
}

func logTo(l *log.Logger, style string, v ...interface{}) {
	msg := fmt.Sprint(v...)
	if Color {
		msg = colorizeMessage(style, msg)
	}
	l.Output(calldepth, msg)
}

func logfTo(l *log.Logger, style, format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	if Color {
		msg = colorizeMessage(style, msg)
	}
	l.Output(calldepth, msg)
}

// colorizeMessage colors the message body but leaves trailing whitespace
// untouched so multi-line output keeps its shape.
func colorizeMessage(style, s string) string {
	whitespace := regexp.MustCompile(`\s*$`)
	trimmed := whitespace.ReplaceAllString(s, "")
	trailing := whitespace.FindString(s)

	return ansi.Color(trimmed, style) + trailing
}
