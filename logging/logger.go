package logging

import (
	"log/slog"
	"os"
)

// Init installs a JSON slog logger as the process default.
func Init() {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}
