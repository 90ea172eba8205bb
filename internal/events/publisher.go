package events

import "context"

// Publisher delivers a serialized envelope to a named channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(ctx context.Context, channel string, payload []byte) error

func (f PublisherFunc) Publish(ctx context.Context, channel string, payload []byte) error {
	return f(ctx, channel, payload)
}
