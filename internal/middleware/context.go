package middleware

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const participantCtxKey ctxKey = "participant_id"

func WithParticipantID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, participantCtxKey, id)
}

func ParticipantIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(participantCtxKey).(uuid.UUID)
	return id, ok
}
