package outbox

import (
	"context"
	"encoding/json"
	"time"

	"festora-chat/internal/events"
	"festora-chat/internal/repository"
)

type Processor struct {
	repo       repository.EventRepository
	publisher  events.Publisher
	clock      func() time.Time
	batchSize  int
	interval   time.Duration
	maxRetries int
}

func NewProcessor(repo repository.EventRepository, publisher events.Publisher, batchSize int, interval time.Duration, maxRetries int) *Processor {
	return &Processor{
		repo:       repo,
		publisher:  publisher,
		clock:      time.Now,
		batchSize:  batchSize,
		interval:   interval,
		maxRetries: maxRetries,
	}
}

func (p *Processor) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.processBatch(ctx)
		}
	}
}

func (p *Processor) processBatch(ctx context.Context) {
	batch, err := p.repo.GetPendingOutboxEvents(ctx, p.batchSize)
	if err != nil || len(batch) == 0 {
		return
	}

	for _, e := range batch {
		if e.RetryCount >= p.maxRetries {
			_ = p.repo.MarkOutboxEventFailed(ctx, e.ID, p.clock().Add(time.Hour), "max retries exceeded")
			continue
		}

		env := events.Envelope{
			EventType:     e.EventType,
			AggregateType: e.AggregateType,
			AggregateID:   e.AggregateID,
			OccurredAt:    e.CreatedAt.UTC(),
			Payload:       json.RawMessage(e.Payload),
		}
		payload, err := json.Marshal(env)
		if err != nil {
			_ = p.repo.MarkOutboxEventFailed(ctx, e.ID, p.clock().Add(time.Minute), err.Error())
			continue
		}

		published := true
		for _, channel := range events.ResolveChannels(env) {
			if err := p.publisher.Publish(ctx, channel, payload); err != nil {
				_ = p.repo.MarkOutboxEventFailed(ctx, e.ID, p.clock().Add(time.Minute), err.Error())
				published = false
				break
			}
		}
		if published {
			_ = p.repo.MarkOutboxEventProcessed(ctx, e.ID)
		}
	}
}
