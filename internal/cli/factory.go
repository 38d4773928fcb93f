package cli

import (
	"context"
	"io"
	"log/slog"

	"checkmate/internal/backend/checkmate"
	"checkmate/internal/config"
	"checkmate/internal/service"
)

// NewServiceFactory returns a factory that builds the HTTP client from the
// effective settings. Debug logs go to logOut when --debug is set.
func NewServiceFactory(logOut io.Writer, opts ...checkmate.Option) ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		settings, err := cfg.Settings()
		if err != nil {
			return nil, err
		}

		level := slog.LevelWarn
		if cfg.Debug {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))
		logger.Debug("using settings", "url", settings.URL, "config", cfg.SettingsPath())

		return checkmate.New(settings, append([]checkmate.Option{checkmate.WithLogger(logger)}, opts...)...)
	}
}
