package model

import "time"

// ActivityType classifies an order audit event.
type ActivityType string

const (
	ActivityOrderCreated      ActivityType = "ORDER_CREATED"
	ActivityStatusChange      ActivityType = "STATUS_CHANGE"
	ActivityDeliverySubmitted ActivityType = "DELIVERY_SUBMITTED"
	ActivityRevisionRequested ActivityType = "REVISION_REQUESTED"
	ActivityMessageSent       ActivityType = "MESSAGE_SENT"
)

// ActivityLogEntry is an immutable audit record of one order-affecting event.
// Entries are only ever appended.
type ActivityLogEntry struct {
	ID        int64
	OrderID   int64
	Type      ActivityType
	Message   string
	CreatedAt time.Time
}
