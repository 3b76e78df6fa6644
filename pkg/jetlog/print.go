package jetlog

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
)

// Logger prints human facing CLI output. It is not a structured logger; use
// logrus for anything that should end up in debug logs.
type Logger struct {
	writer  io.Writer
	spinner *spinner.Spinner
}

func New(w io.Writer) *Logger {
	l := &Logger{writer: w}
	if isTerminal(w) {
		l.spinner = spinner.New(
			spinner.CharSets[26],
			250*time.Millisecond,
			spinner.WithWriter(w),
		)
	}
	return l
}

func (l *Logger) Write(p []byte) (n int, err error) {
	n, err = l.writer.Write(p)
	return n, errors.WithStack(err)
}

func (l *Logger) HeaderPrintf(msg string, a ...any) {
	l.stopSpinner()
	msg = "# " + msg + "\n"
	fprintf(l.writer, color.New(color.FgHiCyan, color.Bold), msg, a...)
}

func (l *Logger) BoldPrintf(msg string, a ...any) {
	l.stopSpinner()
	msg = "\n\t" + msg
	fprintf(l.writer, color.New(color.Bold), msg, a...)
}

func (l *Logger) IndentedPrintln(msg string, a ...any) {
	msg = "\t" + msg + "\n"
	printf(l.writer, msg, a...)
}

func (l *Logger) WarningPrintf(msg string, a ...any) {
	msg = "WARNING: " + msg + "\n"
	fprintf(l.writer, color.New(color.FgHiYellow, color.Bold), msg, a...)
}

// WithSpinnerFuncPrint prints out a message and starts a spinner. closure() will then be
// executed, and the spinner stopped after it's done. Without a terminal the
// closure just runs.
func (l *Logger) WithSpinnerFuncPrint(closure func(), msg string) {
	if l.spinner == nil {
		closure()
		return
	}
	l.stopSpinner()
	l.spinner.Prefix = msg
	l.spinner.FinalMSG = "✔ " + msg + "\n"
	l.spinner.Start()
	defer l.spinner.Stop()

	closure()
}

func (l *Logger) Println(a ...any) {
	println(l.writer, a...)
}

func (l *Logger) Printf(msg string, a ...any) {
	printf(l.writer, msg, a...)
}

func (l *Logger) stopSpinner() {
	if l.spinner != nil && l.spinner.Active() {
		l.spinner.Stop()
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func println(w io.Writer, lines ...any) {
	// mimic the functionality of fmt.Println()
	for i, line := range lines {
		if i > 0 {
			print(w, " ")
		}
		print(w, fmt.Sprintf("%v", line))
	}
	print(w, "\n")
}

func print(w io.Writer, msg string) {
	_, err := w.Write([]byte(msg))
	if err != nil {
		log.Println(err)
	}
}

func printf(w io.Writer, msg string, a ...any) {
	print(w, fmt.Sprintf(msg, a...))
}

func fprintf(w io.Writer, c *color.Color, msg string, a ...any) {
	if _, err := c.Fprintf(w, msg, a...); err != nil {
		log.Println(err)
	}
}
