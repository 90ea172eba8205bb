package conversation

import (
	"fmt"
	"strings"

	festora_errors "festora-chat/pkg/errors"

	"github.com/google/uuid"
)

// Key identifies a conversation by its unordered participant pair. The
// pair is normalized so {a,b} and {b,a} produce the same key.
type Key struct {
	A uuid.UUID
	B uuid.UUID
}

func NewKey(a, b uuid.UUID) Key {
	if strings.Compare(a.String(), b.String()) > 0 {
		a, b = b, a
	}
	return Key{A: a, B: b}
}

func ParseKey(s string) (Key, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return Key{}, fmt.Errorf("%w: malformed conversation key %q", festora_errors.ErrInvalidInput, s)
	}
	a, err := uuid.Parse(parts[0])
	if err != nil {
		return Key{}, fmt.Errorf("%w: %v", festora_errors.ErrInvalidInput, err)
	}
	b, err := uuid.Parse(parts[1])
	if err != nil {
		return Key{}, fmt.Errorf("%w: %v", festora_errors.ErrInvalidInput, err)
	}
	return NewKey(a, b), nil
}

func (k Key) String() string {
	return k.A.String() + ":" + k.B.String()
}

// Other returns the participant opposite p, or uuid.Nil if p is not part
// of the key.
func (k Key) Other(p uuid.UUID) uuid.UUID {
	switch p {
	case k.A:
		return k.B
	case k.B:
		return k.A
	}
	return uuid.Nil
}

func (k Key) Has(p uuid.UUID) bool {
	return p == k.A || p == k.B
}
