package services

import (
	"context"
	"log/slog"

	"github.com/rahmannascenia/accountingbolt/internal/middleware"
)

// BaseService provides request-scoped logging helpers shared by all services.
type BaseService struct{}

func (s *BaseService) logger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

func (s *BaseService) LogDebug(ctx context.Context, msg string, args ...any) {
	s.logger(ctx).Debug(msg, args...)
}

func (s *BaseService) LogInfo(ctx context.Context, msg string, args ...any) {
	s.logger(ctx).Info(msg, args...)
}

func (s *BaseService) LogWarn(ctx context.Context, msg string, args ...any) {
	s.logger(ctx).Warn(msg, args...)
}

func (s *BaseService) LogError(ctx context.Context, msg string, args ...any) {
	s.logger(ctx).Error(msg, args...)
}
