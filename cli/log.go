package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/apml/log"
)

type logConfig struct {
	Level  string `default:"info" enum:"trace,debug,info,warn,error" help:"Set log level."`
	Format string `default:"text" enum:"text,json,pretty"            help:"Set log format."`
	Caller bool   `default:"false"                                   help:"Include caller information." negatable:""`
}

func (*logConfig) group() kong.Group {
	var group kong.Group

	group.Key = "log"
	group.Title = "Logging options"

	return group
}

// start installs the configured logger as the package default used by
// every command.
func (f *logConfig) start(ctx context.Context) {
	logger := log.Make(os.Stderr,
		log.WithLevel(log.ParseLevel(f.Level)),
		log.WithFormat(log.ParseFormat(f.Format)),
		log.WithSource(f.Caller),
	)

	log.SetDefault(logger)

	logger.DebugContext(ctx, "logger initialized",
		slog.String("level", f.Level),
		slog.String("format", f.Format),
		slog.Bool("caller", f.Caller),
	)
}
