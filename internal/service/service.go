package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/carmitra/carmitra/internal/domain"
	"github.com/carmitra/carmitra/pkg/logger"
	"github.com/carmitra/carmitra/pkg/validator"
)

// EventPublisher publishes domain events after successful writes.
// *event.Producer implements it.
type EventPublisher interface {
	PublishReviewCreated(ctx context.Context, review *domain.Review) error
	PublishGuideCreated(ctx context.Context, guide *domain.Guide) error
	PublishGuideUpdated(ctx context.Context, guide *domain.Guide) error
	PublishGuideDeleted(ctx context.Context, uuid string) error
}

// Clock returns the current time. Services use it for timestamps and for
// purchase date checks.
type Clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }

type clockKey struct{}

// withClock returns a context whose validation rules read the time from now.
func withClock(ctx context.Context, now Clock) context.Context {
	return context.WithValue(ctx, clockKey{}, now)
}

func clockFrom(ctx context.Context) time.Time {
	if now, ok := ctx.Value(clockKey{}).(Clock); ok && now != nil {
		return now()
	}
	return systemClock()
}

func init() {
	validator.RegisterRule("purchasedate", func(ctx context.Context, s string) error {
		return domain.CheckPurchaseDate(s, clockFrom(ctx))
	})
}

// reportPublish logs a failed event publish. The write it describes has
// already been committed, so the request still succeeds.
func reportPublish(ctx context.Context, base *slog.Logger, err error, attrs ...any) {
	if err == nil {
		return
	}
	l := logger.WithContext(ctx, base)
	l.WarnContext(ctx, "failed to publish domain event", append(attrs, slog.String("error", err.Error()))...)
}
