// Package logging — минимальный структурированный логгер с контекстом.
// Реализация поверх slog; интерфейс позволяет подменить её в тестах.
package logging

import "context"

// Logger пишет сообщения с парами ключ-значение:
//
//	log.Info(ctx, "server started", "addr", addr)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With возвращает дочерний логгер, который всегда добавляет args.
	With(args ...any) Logger
}
