package domain

// EventFilter narrows audit event listings. Zero values mean "no filter"
// for SessionID and Type; Limit and Offset page through matches ordered
// by creation time descending.
type EventFilter struct {
	SessionID string
	Type      EventType
	Limit     uint
	Offset    uint
}
