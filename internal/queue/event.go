// Package queue defines message payloads exchanged over the message broker.
package queue

// ChangeRequestedEvent is published when a student submits a cancel or
// reschedule request.  It contains enough information for downstream
// consumers to notify the admin without querying the primary database.
type ChangeRequestedEvent struct {
    BookingID     uint64  `json:"booking_id"`
    StudentID     uint64  `json:"student_id"`
    StudentEmail  string  `json:"student_email"`
    Topic         string  `json:"topic"`
    ChangeType    string  `json:"change_type"` // cancel | reschedule
    Reason        string  `json:"reason"`
    RequestedTime *string `json:"requested_time,omitempty"` // RFC3339, reschedule only
    RequestedAt   string  `json:"requested_at"`             // RFC3339 submission instant
}
