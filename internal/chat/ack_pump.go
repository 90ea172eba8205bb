package chat

import (
	"context"
	"errors"

	"festora-chat/internal/transport"
	festora_errors "festora-chat/pkg/errors"
	"festora-chat/pkg/logger"
)

// AckPump drains transport acknowledgements into the tracker. Acks for
// different messages may arrive in any order; the tracker's state machine
// handles duplicates and stale acks, so the pump just forwards.
type AckPump struct {
	tracker   *DeliveryTracker
	transport transport.Transport
	log       *logger.Logger
}

func NewAckPump(tracker *DeliveryTracker, tr transport.Transport, log *logger.Logger) *AckPump {
	return &AckPump{tracker: tracker, transport: tr, log: log}
}

func (p *AckPump) Run(ctx context.Context) {
	acks := p.transport.Acks()
	for {
		select {
		case <-ctx.Done():
			return
		case ack, ok := <-acks:
			if !ok {
				return
			}
			p.apply(ctx, ack)
		}
	}
}

func (p *AckPump) apply(ctx context.Context, ack transport.Ack) {
	var err error
	switch ack.Kind {
	case transport.AckDelivered:
		err = p.tracker.MarkDelivered(ctx, ack.MessageID)
	case transport.AckRead:
		err = p.tracker.MarkRead(ctx, ack.MessageID)
	default:
		return
	}
	if err != nil && p.log != nil {
		// Acks for deleted messages are expected noise, log and move on.
		if errors.Is(err, festora_errors.ErrInvalidTransition) || errors.Is(err, festora_errors.ErrNotFound) {
			p.log.Infof("dropped %s ack for %s: %v", ack.Kind, ack.MessageID, err)
			return
		}
		p.log.Errorf("apply %s ack for %s: %v", ack.Kind, ack.MessageID, err)
	}
}
