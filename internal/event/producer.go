package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/carmitra/carmitra/internal/domain"
	pkgkafka "github.com/carmitra/carmitra/pkg/kafka"
)

// Kafka topics for review and guide domain events.
const (
	TopicReviewCreated = "carmitra.review.created"
	TopicGuideCreated  = "carmitra.guide.created"
	TopicGuideUpdated  = "carmitra.guide.updated"
	TopicGuideDeleted  = "carmitra.guide.deleted"
)

// Aggregate types.
const (
	AggregateTypeReview = "review"
	AggregateTypeGuide  = "guide"
)

// SourceAPI identifies events originating from the API server.
const SourceAPI = "carmitra-api"

// ReviewCreatedData is the payload for a review.created event.
type ReviewCreatedData struct {
	ID                    string `json:"id"`
	CarModel              string `json:"carModel"`
	Brand                 string `json:"brand"`
	DealershipName        string `json:"dealershipName"`
	City                  string `json:"city"`
	Rating                int    `json:"rating"`
	SalesExperienceRating int    `json:"salesExperienceRating"`
}

// GuideData is the payload for guide.created and guide.updated events.
type GuideData struct {
	UUID     string   `json:"uuid"`
	Title    string   `json:"title"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	ReadTime int      `json:"readTime"`
}

// GuideDeletedData is the payload for a guide.deleted event.
type GuideDeletedData struct {
	UUID string `json:"uuid"`
}

// Publisher writes an event envelope to a topic. *pkgkafka.Producer
// implements it.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes review and guide domain events. With a nil Publisher
// every method is a no-op.
type Producer struct {
	kafka  Publisher
	logger *slog.Logger
}

// NewProducer creates a new event producer. Pass a nil kafka to disable
// publishing.
func NewProducer(kafka Publisher, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// Enabled reports whether events are actually published.
func (p *Producer) Enabled() bool {
	return p != nil && p.kafka != nil
}

func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) error {
	if !p.Enabled() {
		return nil
	}

	event, err := pkgkafka.NewEvent(ctx, topic, aggregateID, aggregateType, SourceAPI, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}
	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published domain event",
		slog.String("topic", topic),
		slog.String("aggregate_id", aggregateID),
	)
	return nil
}

// PublishReviewCreated publishes a review.created event.
func (p *Producer) PublishReviewCreated(ctx context.Context, review *domain.Review) error {
	return p.publish(ctx, TopicReviewCreated, review.ID, AggregateTypeReview, ReviewCreatedData{
		ID:                    review.ID,
		CarModel:              review.CarModel,
		Brand:                 domain.BrandToken(review.CarModel),
		DealershipName:        review.DealershipName,
		City:                  review.City,
		Rating:                review.Rating,
		SalesExperienceRating: review.SalesExperienceRating,
	})
}

// PublishGuideCreated publishes a guide.created event.
func (p *Producer) PublishGuideCreated(ctx context.Context, guide *domain.Guide) error {
	return p.publish(ctx, TopicGuideCreated, guide.UUID, AggregateTypeGuide, guideData(guide))
}

// PublishGuideUpdated publishes a guide.updated event.
func (p *Producer) PublishGuideUpdated(ctx context.Context, guide *domain.Guide) error {
	return p.publish(ctx, TopicGuideUpdated, guide.UUID, AggregateTypeGuide, guideData(guide))
}

// PublishGuideDeleted publishes a guide.deleted event.
func (p *Producer) PublishGuideDeleted(ctx context.Context, uuid string) error {
	return p.publish(ctx, TopicGuideDeleted, uuid, AggregateTypeGuide, GuideDeletedData{UUID: uuid})
}

func guideData(g *domain.Guide) GuideData {
	return GuideData{
		UUID:     g.UUID,
		Title:    g.Title,
		Category: g.Category,
		Tags:     g.Tags,
		ReadTime: g.ReadTime,
	}
}
