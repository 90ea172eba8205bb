package message

// DeliveryStatus is the per-message lifecycle: SENT -> DELIVERED -> READ,
// with DELETED terminal and reachable from any non-terminal status.
type DeliveryStatus string

const (
	StatusSent      DeliveryStatus = "SENT"
	StatusDelivered DeliveryStatus = "DELIVERED"
	StatusRead      DeliveryStatus = "READ"
	StatusDeleted   DeliveryStatus = "DELETED"
)

func (s DeliveryStatus) Valid() bool {
	switch s {
	case StatusSent, StatusDelivered, StatusRead, StatusDeleted:
		return true
	}
	return false
}

// Rank orders the forward path. DELETED sits outside the path and ranks
// highest so no transition out of it ever looks like progress.
func (s DeliveryStatus) Rank() int {
	switch s {
	case StatusSent:
		return 0
	case StatusDelivered:
		return 1
	case StatusRead:
		return 2
	case StatusDeleted:
		return 3
	}
	return -1
}

func (s DeliveryStatus) Terminal() bool {
	return s == StatusDeleted
}

// CanAdvanceTo reports whether moving from s to target is a legal forward
// transition. Equal or backward targets are not advances (callers treat
// those as no-ops, not errors). SENT -> READ is allowed: a transport may
// coalesce delivery and read acknowledgements.
func (s DeliveryStatus) CanAdvanceTo(target DeliveryStatus) bool {
	if s == StatusDeleted {
		return false
	}
	if target == StatusDeleted {
		return true
	}
	return target.Rank() > s.Rank()
}
