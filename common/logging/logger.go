package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

type Logger = zerolog.Logger

var (
	componentsFilter = make(map[string]bool)
	all              = true
	lock             = sync.RWMutex{}
)

// ComponentFilterWriter drops records of components disabled with ApplyComponentsFilter.
type ComponentFilterWriter struct {
	Writer io.Writer
	Name   string
}

func (w ComponentFilterWriter) Write(p []byte) (n int, err error) {
	if !componentEnabled(w.Name) {
		return len(p), nil
	}
	return w.Writer.Write(p)
}

func componentEnabled(name string) bool {
	lock.RLock()
	defer lock.RUnlock()

	if enabled, found := componentsFilter[name]; found {
		return enabled
	}
	return all
}

func ApplyComponentsFilterEnv() {
	if logFilter := os.Getenv("FLAGSET_LOG_FILTER"); logFilter != "" {
		ApplyComponentsFilter(logFilter)
	}
}

// ApplyComponentsFilter enables or disables components by a colon-separated list,
// e.g. "all:-calc" or "-all:render". "all" addresses every component.
func ApplyComponentsFilter(filter string) {
	comps := strings.Split(filter, ":")

	lock.Lock()
	defer lock.Unlock()

	for _, comp := range comps {
		if comp == "" {
			continue
		}

		enabled := true
		if comp[0] == '-' {
			enabled = false
			comp = comp[1:]
		}

		if comp == "all" {
			all = enabled
			for k := range componentsFilter {
				componentsFilter[k] = enabled
			}
		} else {
			componentsFilter[comp] = enabled
		}
	}
}

func TrySetupGlobalLevel(level string) error {
	l, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(l)
	return nil
}

// defaults to INFO
func SetLogSeverityFromEnv() {
	if lvl, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err != nil {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(lvl)
	}
}

func makeBold(str any, disabled bool) string {
	const colorBold = 1

	if disabled {
		return fmt.Sprintf("%s", str)
	}
	return fmt.Sprintf("\x1b[%dm%v\x1b[0m", colorBold, str)
}

func makeComponentFormatter(noColor bool) zerolog.Formatter {
	return func(c any) string {
		return makeBold(fmt.Sprintf("[%s]\t", c), noColor)
	}
}

func NewLogger(component string) Logger {
	noColor := os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(os.Stderr.Fd()))

	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.DateTime,
		PartsOrder: []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			FieldComponent,
			zerolog.CallerFieldName,
			zerolog.MessageFieldName,
		},
		FieldsExclude:    []string{FieldComponent},
		FormatFieldValue: makeComponentFormatter(noColor),
		NoColor:          noColor,
	}
	return newLogger(component, consoleWriter)
}

// NewLoggerWithWriter writes JSON records to writer.
func NewLoggerWithWriter(component string, writer io.Writer) Logger {
	return newLogger(component, writer)
}

func newLogger(component string, writer io.Writer) Logger {
	return zerolog.New(ComponentFilterWriter{
		Writer: writer,
		Name:   component,
	}).With().
		Str(FieldComponent, component).
		Caller().
		Timestamp().
		Logger()
}
