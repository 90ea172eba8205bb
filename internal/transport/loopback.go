package transport

import (
	"context"
	"sync"
	"time"

	"festora-chat/internal/domain/message"

	"github.com/google/uuid"
)

// Loopback is an in-process transport for tests and local runs. Submit
// accepts immediately; delivery and read acks are injected by the test
// through Deliver and Read.
type Loopback struct {
	mu     sync.Mutex
	acks   chan Ack
	closed bool
}

func NewLoopback() *Loopback {
	return &Loopback{acks: make(chan Ack, 64)}
}

func (l *Loopback) Submit(ctx context.Context, m message.Message) (Ack, error) {
	if err := ctx.Err(); err != nil {
		return Ack{}, err
	}
	return Ack{MessageID: m.ID, Kind: AckAccepted, At: time.Now()}, nil
}

func (l *Loopback) Acks() <-chan Ack {
	return l.acks
}

func (l *Loopback) Deliver(messageID uuid.UUID) {
	l.push(Ack{MessageID: messageID, Kind: AckDelivered, At: time.Now()})
}

func (l *Loopback) Read(messageID uuid.UUID) {
	l.push(Ack{MessageID: messageID, Kind: AckRead, At: time.Now()})
}

func (l *Loopback) push(ack Ack) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.closed {
		l.acks <- ack
	}
}

func (l *Loopback) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.closed {
		l.closed = true
		close(l.acks)
	}
	return nil
}
