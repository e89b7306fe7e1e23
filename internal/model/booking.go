package model

import "time"

// Booking statuses.  A booking starts out UPCOMING, becomes COMPLETED
// through the admin "complete session" operation, or CANCELLED when an
// admin approves a student's pending cancel request.
const (
    BookingStatusUpcoming  = "upcoming"
    BookingStatusCompleted = "completed"
    BookingStatusCancelled = "cancelled"
)

// Pending change types.  A pending change is a student-submitted,
// unresolved request overlaid on a booking; it never alters the core
// schedule fields until an admin resolves it.
const (
    PendingChangeCancel     = "cancel"
    PendingChangeReschedule = "reschedule"
)

// Resource is a single supplementary material attached to a completed
// session, e.g. a link to a shared document.  Resources are stored as a
// JSON array in the bookings table.
type Resource struct {
    Title string `json:"title"`
    URL   string `json:"url"`
}

// Booking records one scheduled or completed tutoring session.  The
// session duration is a fixed one-hour convention; only the start time
// is stored.
//
// Fields:
//  ID                – primary key identifier.
//  StudentID         – owning student; set at creation, immutable.
//  Topic             – free-text description of the session content.
//  StartTime         – scheduled start of the session (UTC).
//  Status            – one of the BookingStatus* constants.
//  MeetingLink       – video call URL, set independently of status.
//  SessionNotes      – notes recorded at completion.
//  Resources         – materials attached at completion (may be empty).
//  PendingChangeType – outstanding cancel/reschedule request, if any.
//  ChangeReason      – reason accompanying a pending change.
//  RequestedTime     – proposed new start time for a reschedule request.
//  CreatedAt         – creation timestamp.
//  UpdatedAt         – last update timestamp.
type Booking struct {
    ID                uint64     `json:"id"`                  // bookings.id
    StudentID         uint64     `json:"student_id"`          // bookings.student_id
    Topic             string     `json:"topic"`               // bookings.topic
    StartTime         time.Time  `json:"start_time"`          // bookings.start_time
    Status            string     `json:"status"`              // bookings.status
    MeetingLink       *string    `json:"meeting_link"`        // bookings.meeting_link (nullable)
    SessionNotes      *string    `json:"session_notes"`       // bookings.session_notes (nullable)
    Resources         []Resource `json:"resources"`           // bookings.resources (json)
    PendingChangeType *string    `json:"pending_change_type"` // bookings.pending_change_type (nullable)
    ChangeReason      *string    `json:"change_reason"`       // bookings.change_reason (nullable)
    RequestedTime     *time.Time `json:"requested_time"`      // bookings.requested_time (nullable)
    CreatedAt         time.Time  `json:"created_at"`          // bookings.created_at
    UpdatedAt         time.Time  `json:"updated_at"`          // bookings.updated_at
}

// HasPendingChange reports whether a cancel or reschedule request is
// outstanding on the booking.
func (b *Booking) HasPendingChange() bool {
    return b.PendingChangeType != nil && *b.PendingChangeType != ""
}
