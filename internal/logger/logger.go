package logger

import (
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
)

// Init installs the default slog logger. Development gets human-readable
// text at debug level; production gets JSON at info level. When a Sentry
// DSN is configured, errors are fanned out to Sentry as well.
func Init(isDev bool, sentryDSN string) {
	var stdout slog.Handler
	if isDev {
		stdout = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		stdout = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}

	handler := stdout
	if sentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{Dsn: sentryDSN})
		if err != nil {
			slog.New(stdout).Warn("sentry init failed, logging to stdout only", "error", err)
		} else {
			handler = slogmulti.Fanout(
				stdout,
				slogsentry.Option{Level: slog.LevelError}.NewSentryHandler(),
			)
		}
	}

	slog.SetDefault(slog.New(handler))
}
