package lifecycle

import (
    "context"
    "database/sql"
    "errors"
    "log"
    "strings"
    "time"

    "github.com/alamtutoring/portal/internal/model"
)

// Caller identifies the authenticated user performing an operation.
// Every engine operation takes the caller explicitly instead of reading
// ambient session state.
type Caller struct {
    UserID uint64
    Email  string
    Role   string // model.RoleStudent or model.RoleAdmin
}

// IsAdmin reports whether the caller holds the admin role.
func (c Caller) IsAdmin() bool { return c.Role == model.RoleAdmin }

// Store is the persistence capability set required by the engine.  The
// MySQL repositories satisfy it; tests substitute an in-memory fake.
// Get methods return sql.ErrNoRows when the record does not exist.
type Store interface {
    GetBooking(ctx context.Context, id uint64) (*model.Booking, error)
    InsertBooking(ctx context.Context, b *model.Booking) error
    UpdateBooking(ctx context.Context, b *model.Booking) error
    GetProfile(ctx context.Context, id uint64) (*model.Profile, error)
    UpdateProfile(ctx context.Context, p *model.Profile) error
}

// ChangeRequest carries the details of a student-initiated cancel or
// reschedule request to the admin notification collaborator.
type ChangeRequest struct {
    BookingID     uint64
    StudentID     uint64
    StudentEmail  string
    Topic         string
    ChangeType    string // model.PendingChangeCancel or model.PendingChangeReschedule
    Reason        string
    RequestedTime *time.Time // set for reschedule requests only
}

// Notifier delivers change requests to the admin.  Failures are treated
// as non-fatal: the booking update has already been persisted.
type Notifier interface {
    ChangeRequested(ctx context.Context, req ChangeRequest) error
}

// Engine validates inputs and applies booking state transitions against
// the configured store.  Sessions follow a fixed one-hour convention, so
// only start times are handled.
type Engine struct {
    store    Store
    notifier Notifier
    minLead  time.Duration
    now      func() time.Time
}

// New constructs an Engine.  minLead is the minimum interval required
// between the current instant and a requested or new session start
// time; it defaults to one hour when non-positive.
func New(store Store, notifier Notifier, minLead time.Duration) *Engine {
    if minLead <= 0 {
        minLead = time.Hour
    }
    return &Engine{store: store, notifier: notifier, minLead: minLead, now: time.Now}
}

// CreateBooking books a new session for the calling student.  The topic
// must be non-blank and the start time must be strictly later than the
// current instant plus the minimum lead.  No overlap check is performed
// against other bookings; availability is confirmed manually by the
// admin.
func (e *Engine) CreateBooking(ctx context.Context, caller Caller, topic string, startTime time.Time) (*model.Booking, error) {
    if caller.IsAdmin() {
        return nil, ErrForbidden
    }
    topic = strings.TrimSpace(topic)
    if topic == "" {
        return nil, invalidf("please enter a topic")
    }
    if err := e.checkLead(startTime); err != nil {
        return nil, err
    }
    now := e.now().UTC()
    b := &model.Booking{
        StudentID: caller.UserID,
        Topic:     topic,
        StartTime: startTime.UTC(),
        Status:    model.BookingStatusUpcoming,
        Resources: []model.Resource{},
        CreatedAt: now,
        UpdatedAt: now,
    }
    if err := e.store.InsertBooking(ctx, b); err != nil {
        return nil, err
    }
    return b, nil
}

// RequestReschedule records a student's request to move a booking to a
// new time.  It overlays the booking with the pending change without
// altering the stored start time; the move is only materialized when an
// admin approves the request via ResolvePendingChange.
func (e *Engine) RequestReschedule(ctx context.Context, caller Caller, bookingID uint64, requestedTime time.Time, reason string) (*model.Booking, error) {
    b, err := e.ownedUpcoming(ctx, caller, bookingID)
    if err != nil {
        return nil, err
    }
    reason = strings.TrimSpace(reason)
    if reason == "" {
        return nil, invalidf("please provide a reason for rescheduling")
    }
    if err := e.checkLead(requestedTime); err != nil {
        return nil, err
    }
    ct := model.PendingChangeReschedule
    rt := requestedTime.UTC()
    b.PendingChangeType = &ct
    b.RequestedTime = &rt
    b.ChangeReason = &reason
    b.UpdatedAt = e.now().UTC()
    if err := e.store.UpdateBooking(ctx, b); err != nil {
        return nil, err
    }
    e.notify(ctx, ChangeRequest{
        BookingID:     b.ID,
        StudentID:     b.StudentID,
        StudentEmail:  caller.Email,
        Topic:         b.Topic,
        ChangeType:    ct,
        Reason:        reason,
        RequestedTime: &rt,
    })
    return b, nil
}

// RequestCancel records a student's request to cancel a booking.  The
// booking keeps its status until an admin resolves the request.
func (e *Engine) RequestCancel(ctx context.Context, caller Caller, bookingID uint64, reason string) (*model.Booking, error) {
    b, err := e.ownedUpcoming(ctx, caller, bookingID)
    if err != nil {
        return nil, err
    }
    reason = strings.TrimSpace(reason)
    if reason == "" {
        return nil, invalidf("please provide a reason for cancellation")
    }
    ct := model.PendingChangeCancel
    b.PendingChangeType = &ct
    b.ChangeReason = &reason
    b.UpdatedAt = e.now().UTC()
    if err := e.store.UpdateBooking(ctx, b); err != nil {
        return nil, err
    }
    e.notify(ctx, ChangeRequest{
        BookingID:    b.ID,
        StudentID:    b.StudentID,
        StudentEmail: caller.Email,
        Topic:        b.Topic,
        ChangeType:   ct,
        Reason:       reason,
    })
    return b, nil
}

// AttachMeetingLink sets the video call URL on a booking.  Admin only.
// The operation is independent of status and pending-change state and
// may be applied at any time, including after completion.  Attaching
// the same link twice yields the same stored value.
func (e *Engine) AttachMeetingLink(ctx context.Context, caller Caller, bookingID uint64, link string) (*model.Booking, error) {
    if !caller.IsAdmin() {
        return nil, ErrForbidden
    }
    link = strings.TrimSpace(link)
    if link == "" {
        return nil, invalidf("please provide a meeting link")
    }
    if !strings.HasPrefix(link, "http") {
        return nil, invalidf("meeting link must start with http")
    }
    b, err := e.getBooking(ctx, bookingID)
    if err != nil {
        return nil, err
    }
    b.MeetingLink = &link
    b.UpdatedAt = e.now().UTC()
    if err := e.store.UpdateBooking(ctx, b); err != nil {
        return nil, err
    }
    return b, nil
}

// CompleteSession marks a booking as completed, recording session notes
// and at most one resource link.  Admin only.  Notes are required; the
// resource URL must start with an http scheme when supplied.  Any
// outstanding pending change is left in place and must be resolved
// separately.
func (e *Engine) CompleteSession(ctx context.Context, caller Caller, bookingID uint64, notes string, resource *model.Resource) (*model.Booking, error) {
    if !caller.IsAdmin() {
        return nil, ErrForbidden
    }
    notes = strings.TrimSpace(notes)
    if notes == "" {
        return nil, invalidf("please enter session notes")
    }
    resources := []model.Resource{}
    if resource != nil {
        url := strings.TrimSpace(resource.URL)
        if url == "" || !strings.HasPrefix(url, "http") {
            return nil, invalidf("resource link must start with http")
        }
        title := strings.TrimSpace(resource.Title)
        if title == "" {
            title = "Session Resources"
        }
        resources = append(resources, model.Resource{Title: title, URL: url})
    }
    b, err := e.getBooking(ctx, bookingID)
    if err != nil {
        return nil, err
    }
    b.Status = model.BookingStatusCompleted
    b.SessionNotes = &notes
    b.Resources = resources
    b.UpdatedAt = e.now().UTC()
    if err := e.store.UpdateBooking(ctx, b); err != nil {
        return nil, err
    }
    return b, nil
}

// Resolution decisions accepted by ResolvePendingChange.
const (
    DecisionApprove = "approve"
    DecisionDeny    = "deny"
)

// ResolvePendingChange closes out a student's pending cancel or
// reschedule request.  Admin only.  Approving a reschedule moves the
// booking's start time to the requested time; approving a cancel sets
// the status to cancelled.  Denying leaves the booking as it was.  In
// every case the pending overlay is cleared, which re-enables future
// change requests on the booking.
func (e *Engine) ResolvePendingChange(ctx context.Context, caller Caller, bookingID uint64, decision string) (*model.Booking, error) {
    if !caller.IsAdmin() {
        return nil, ErrForbidden
    }
    decision = strings.ToLower(strings.TrimSpace(decision))
    if decision != DecisionApprove && decision != DecisionDeny {
        return nil, invalidf("decision must be %q or %q", DecisionApprove, DecisionDeny)
    }
    b, err := e.getBooking(ctx, bookingID)
    if err != nil {
        return nil, err
    }
    if !b.HasPendingChange() {
        return nil, ErrNoPendingChange
    }
    if decision == DecisionApprove {
        switch *b.PendingChangeType {
        case model.PendingChangeReschedule:
            if b.RequestedTime == nil {
                return nil, invalidf("reschedule request has no requested time")
            }
            b.StartTime = b.RequestedTime.UTC()
        case model.PendingChangeCancel:
            b.Status = model.BookingStatusCancelled
        }
    }
    b.PendingChangeType = nil
    b.ChangeReason = nil
    b.RequestedTime = nil
    b.UpdatedAt = e.now().UTC()
    if err := e.store.UpdateBooking(ctx, b); err != nil {
        return nil, err
    }
    return b, nil
}

// UpdateGoals overwrites a student's goals with the trimmed input.
// Admin only.  An empty string is allowed; there is no versioning or
// audit trail.
func (e *Engine) UpdateGoals(ctx context.Context, caller Caller, studentID uint64, goals string) (*model.Profile, error) {
    if !caller.IsAdmin() {
        return nil, ErrForbidden
    }
    p, err := e.store.GetProfile(ctx, studentID)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrNotFound
        }
        return nil, err
    }
    p.Goals = strings.TrimSpace(goals)
    p.UpdatedAt = e.now().UTC()
    if err := e.store.UpdateProfile(ctx, p); err != nil {
        return nil, err
    }
    return p, nil
}

// getBooking loads a booking and maps a missing row to ErrNotFound.
func (e *Engine) getBooking(ctx context.Context, id uint64) (*model.Booking, error) {
    b, err := e.store.GetBooking(ctx, id)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrNotFound
        }
        return nil, err
    }
    return b, nil
}

// ownedUpcoming loads a booking for a student-initiated change request
// and enforces the shared preconditions: the caller owns the booking,
// the booking is still upcoming, and no other change request is
// outstanding.
func (e *Engine) ownedUpcoming(ctx context.Context, caller Caller, bookingID uint64) (*model.Booking, error) {
    b, err := e.getBooking(ctx, bookingID)
    if err != nil {
        return nil, err
    }
    if b.StudentID != caller.UserID {
        return nil, ErrForbidden
    }
    if b.Status != model.BookingStatusUpcoming {
        return nil, invalidf("only upcoming sessions can be changed")
    }
    if b.HasPendingChange() {
        return nil, ErrPendingChange
    }
    return b, nil
}

// checkLead rejects start times that are not strictly later than the
// current instant plus the minimum lead.
func (e *Engine) checkLead(t time.Time) error {
    if t.IsZero() {
        return invalidf("please select a date and time")
    }
    if !t.After(e.now().Add(e.minLead)) {
        return invalidf("please select a time at least %s from now", e.minLead)
    }
    return nil
}

// notify forwards a change request to the admin collaborator.  Delivery
// failures are logged and ignored; the state change has already been
// persisted.
func (e *Engine) notify(ctx context.Context, req ChangeRequest) {
    if e.notifier == nil {
        return
    }
    if err := e.notifier.ChangeRequested(ctx, req); err != nil {
        log.Printf("lifecycle: change request notification failed: %v", err)
    }
}
