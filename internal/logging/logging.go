// Package logging builds the go-kit loggers used by the command line and the
// façade service.
package logging

import (
	"io"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/viant/memfit/model"
)

const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// New returns a logfmt logger writing to w, stamped with time and caller and
// filtered at lvl.  An empty lvl means info.
func New(w io.Writer, lvl string) (log.Logger, error) {
	option, err := levelOption(lvl)
	if err != nil {
		return nil, err
	}
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = level.NewFilter(logger, option)
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
	return logger, nil
}

// Nop returns a logger that discards everything.
func Nop() log.Logger {
	return log.NewNopLogger()
}

func levelOption(lvl string) (level.Option, error) {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case LevelDebug:
		return level.AllowDebug(), nil
	case LevelInfo, "":
		return level.AllowInfo(), nil
	case LevelWarn, "warning":
		return level.AllowWarn(), nil
	case LevelError:
		return level.AllowError(), nil
	}
	return nil, model.InvalidConfigurationf("unknown log level %q", lvl)
}
