package events

// Topics emitted by the booking domain.
const (
	TopicBookingCreated     = "booking.created"
	TopicBookingCancelled   = "booking.cancelled"
	TopicBookingRescheduled = "booking.rescheduled"
)
