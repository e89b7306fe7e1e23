package lifecycle

import (
    "context"
    "database/sql"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/alamtutoring/portal/internal/model"
)

// fakeStore is an in-memory Store for engine tests.
type fakeStore struct {
    bookings map[uint64]*model.Booking
    profiles map[uint64]*model.Profile
    nextID   uint64
}

func newFakeStore() *fakeStore {
    return &fakeStore{
        bookings: map[uint64]*model.Booking{},
        profiles: map[uint64]*model.Profile{},
        nextID:   1,
    }
}

func (s *fakeStore) GetBooking(_ context.Context, id uint64) (*model.Booking, error) {
    b, ok := s.bookings[id]
    if !ok {
        return nil, sql.ErrNoRows
    }
    cp := *b
    return &cp, nil
}

func (s *fakeStore) InsertBooking(_ context.Context, b *model.Booking) error {
    b.ID = s.nextID
    s.nextID++
    cp := *b
    s.bookings[b.ID] = &cp
    return nil
}

func (s *fakeStore) UpdateBooking(_ context.Context, b *model.Booking) error {
    if _, ok := s.bookings[b.ID]; !ok {
        return sql.ErrNoRows
    }
    cp := *b
    s.bookings[b.ID] = &cp
    return nil
}

func (s *fakeStore) GetProfile(_ context.Context, id uint64) (*model.Profile, error) {
    p, ok := s.profiles[id]
    if !ok {
        return nil, sql.ErrNoRows
    }
    cp := *p
    return &cp, nil
}

func (s *fakeStore) UpdateProfile(_ context.Context, p *model.Profile) error {
    cp := *p
    s.profiles[p.ID] = &cp
    return nil
}

// fakeNotifier records every change request it receives.
type fakeNotifier struct {
    requests []ChangeRequest
}

func (n *fakeNotifier) ChangeRequested(_ context.Context, req ChangeRequest) error {
    n.requests = append(n.requests, req)
    return nil
}

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T) (*Engine, *fakeStore, *fakeNotifier) {
    t.Helper()
    store := newFakeStore()
    notifier := &fakeNotifier{}
    e := New(store, notifier, time.Hour)
    e.now = func() time.Time { return testNow }
    return e, store, notifier
}

var (
    student      = Caller{UserID: 7, Email: "student@example.com", Role: model.RoleStudent}
    otherStudent = Caller{UserID: 8, Email: "other@example.com", Role: model.RoleStudent}
    admin        = Caller{UserID: 1, Email: "admin@example.com", Role: model.RoleAdmin}
)

func TestCreateBooking(t *testing.T) {
    ctx := context.Background()

    t.Run("success", func(t *testing.T) {
        e, store, _ := newTestEngine(t)
        start := testNow.Add(2 * time.Hour)
        b, err := e.CreateBooking(ctx, student, "  Integration by Parts ", start)
        require.NoError(t, err)
        assert.Equal(t, student.UserID, b.StudentID)
        assert.Equal(t, "Integration by Parts", b.Topic)
        assert.Equal(t, model.BookingStatusUpcoming, b.Status)
        assert.Nil(t, b.MeetingLink)
        assert.Nil(t, b.PendingChangeType)
        assert.Empty(t, b.Resources)
        require.Len(t, store.bookings, 1)
    })

    t.Run("blank topic rejected", func(t *testing.T) {
        e, store, _ := newTestEngine(t)
        _, err := e.CreateBooking(ctx, student, "   ", testNow.Add(2*time.Hour))
        assert.True(t, IsValidation(err))
        assert.Empty(t, store.bookings)
    })

    t.Run("insufficient lead rejected", func(t *testing.T) {
        e, store, _ := newTestEngine(t)
        _, err := e.CreateBooking(ctx, student, "Limits", testNow.Add(30*time.Minute))
        assert.True(t, IsValidation(err))
        assert.Empty(t, store.bookings)
    })

    t.Run("lead boundary", func(t *testing.T) {
        e, _, _ := newTestEngine(t)
        // exactly now+lead is not strictly later, must be rejected
        _, err := e.CreateBooking(ctx, student, "Limits", testNow.Add(time.Hour))
        assert.True(t, IsValidation(err))
        // one minute beyond the lead succeeds
        _, err = e.CreateBooking(ctx, student, "Limits", testNow.Add(61*time.Minute))
        assert.NoError(t, err)
    })

    t.Run("past time rejected", func(t *testing.T) {
        e, _, _ := newTestEngine(t)
        _, err := e.CreateBooking(ctx, student, "Limits", testNow.Add(-time.Hour))
        assert.True(t, IsValidation(err))
    })

    t.Run("admin cannot book", func(t *testing.T) {
        e, _, _ := newTestEngine(t)
        _, err := e.CreateBooking(ctx, admin, "Limits", testNow.Add(2*time.Hour))
        assert.ErrorIs(t, err, ErrForbidden)
    })
}

func mustCreate(t *testing.T, e *Engine, caller Caller, start time.Time) *model.Booking {
    t.Helper()
    b, err := e.CreateBooking(context.Background(), caller, "Newton's Laws", start)
    require.NoError(t, err)
    return b
}

func TestRequestReschedule(t *testing.T) {
    ctx := context.Background()

    t.Run("overlays without changing start time", func(t *testing.T) {
        e, store, notifier := newTestEngine(t)
        orig := mustCreate(t, e, student, testNow.Add(2*time.Hour))
        requested := testNow.Add(72 * time.Hour)

        b, err := e.RequestReschedule(ctx, student, orig.ID, requested, "conflict")
        require.NoError(t, err)
        require.NotNil(t, b.PendingChangeType)
        assert.Equal(t, model.PendingChangeReschedule, *b.PendingChangeType)
        require.NotNil(t, b.RequestedTime)
        assert.True(t, b.RequestedTime.Equal(requested))
        require.NotNil(t, b.ChangeReason)
        assert.Equal(t, "conflict", *b.ChangeReason)
        // the stored start time and status are untouched
        assert.True(t, b.StartTime.Equal(orig.StartTime))
        assert.Equal(t, model.BookingStatusUpcoming, b.Status)

        require.Len(t, notifier.requests, 1)
        assert.Equal(t, model.PendingChangeReschedule, notifier.requests[0].ChangeType)
        assert.Equal(t, student.Email, notifier.requests[0].StudentEmail)

        stored, err := store.GetBooking(ctx, orig.ID)
        require.NoError(t, err)
        assert.True(t, stored.HasPendingChange())
    })

    t.Run("blank reason rejected", func(t *testing.T) {
        e, _, notifier := newTestEngine(t)
        b := mustCreate(t, e, student, testNow.Add(2*time.Hour))
        _, err := e.RequestReschedule(ctx, student, b.ID, testNow.Add(72*time.Hour), "  ")
        assert.True(t, IsValidation(err))
        assert.Empty(t, notifier.requests)
    })

    t.Run("requested time must respect lead", func(t *testing.T) {
        e, _, _ := newTestEngine(t)
        b := mustCreate(t, e, student, testNow.Add(2*time.Hour))
        _, err := e.RequestReschedule(ctx, student, b.ID, testNow, "conflict")
        assert.True(t, IsValidation(err))
        _, err = e.RequestReschedule(ctx, student, b.ID, testNow.Add(-time.Minute), "conflict")
        assert.True(t, IsValidation(err))
        _, err = e.RequestReschedule(ctx, student, b.ID, testNow.Add(61*time.Minute), "conflict")
        assert.NoError(t, err)
    })

    t.Run("second request blocked while one is pending", func(t *testing.T) {
        e, _, notifier := newTestEngine(t)
        b := mustCreate(t, e, student, testNow.Add(2*time.Hour))
        _, err := e.RequestReschedule(ctx, student, b.ID, testNow.Add(72*time.Hour), "conflict")
        require.NoError(t, err)
        _, err = e.RequestCancel(ctx, student, b.ID, "changed my mind")
        assert.ErrorIs(t, err, ErrPendingChange)
        assert.Len(t, notifier.requests, 1)
    })

    t.Run("foreign booking forbidden", func(t *testing.T) {
        e, _, _ := newTestEngine(t)
        b := mustCreate(t, e, student, testNow.Add(2*time.Hour))
        _, err := e.RequestReschedule(ctx, otherStudent, b.ID, testNow.Add(72*time.Hour), "conflict")
        assert.ErrorIs(t, err, ErrForbidden)
    })

    t.Run("missing booking", func(t *testing.T) {
        e, _, _ := newTestEngine(t)
        _, err := e.RequestReschedule(ctx, student, 999, testNow.Add(72*time.Hour), "conflict")
        assert.ErrorIs(t, err, ErrNotFound)
    })
}

func TestRequestCancel(t *testing.T) {
    ctx := context.Background()

    t.Run("sets overlay and notifies", func(t *testing.T) {
        e, _, notifier := newTestEngine(t)
        orig := mustCreate(t, e, student, testNow.Add(2*time.Hour))
        b, err := e.RequestCancel(ctx, student, orig.ID, "sick")
        require.NoError(t, err)
        require.NotNil(t, b.PendingChangeType)
        assert.Equal(t, model.PendingChangeCancel, *b.PendingChangeType)
        require.NotNil(t, b.ChangeReason)
        assert.Equal(t, "sick", *b.ChangeReason)
        assert.Nil(t, b.RequestedTime)
        // cancellation is a request only; status does not change
        assert.Equal(t, model.BookingStatusUpcoming, b.Status)
        require.Len(t, notifier.requests, 1)
        assert.Equal(t, model.PendingChangeCancel, notifier.requests[0].ChangeType)
    })

    t.Run("blank reason rejected", func(t *testing.T) {
        e, _, _ := newTestEngine(t)
        b := mustCreate(t, e, student, testNow.Add(2*time.Hour))
        _, err := e.RequestCancel(ctx, student, b.ID, "")
        assert.True(t, IsValidation(err))
    })

    t.Run("completed booking cannot be changed", func(t *testing.T) {
        e, _, _ := newTestEngine(t)
        b := mustCreate(t, e, student, testNow.Add(2*time.Hour))
        _, err := e.CompleteSession(ctx, admin, b.ID, "Covered derivatives", nil)
        require.NoError(t, err)
        _, err = e.RequestCancel(ctx, student, b.ID, "too late")
        assert.True(t, IsValidation(err))
    })
}

func TestAttachMeetingLink(t *testing.T) {
    ctx := context.Background()

    t.Run("admin sets link", func(t *testing.T) {
        e, _, _ := newTestEngine(t)
        b := mustCreate(t, e, student, testNow.Add(2*time.Hour))
        got, err := e.AttachMeetingLink(ctx, admin, b.ID, "https://zoom.example/j/123")
        require.NoError(t, err)
        require.NotNil(t, got.MeetingLink)
        assert.Equal(t, "https://zoom.example/j/123", *got.MeetingLink)
    })

    t.Run("idempotent", func(t *testing.T) {
        e, store, _ := newTestEngine(t)
        b := mustCreate(t, e, student, testNow.Add(2*time.Hour))
        _, err := e.AttachMeetingLink(ctx, admin, b.ID, "https://zoom.example/j/123")
        require.NoError(t, err)
        got, err := e.AttachMeetingLink(ctx, admin, b.ID, "https://zoom.example/j/123")
        require.NoError(t, err)
        assert.Equal(t, "https://zoom.example/j/123", *got.MeetingLink)
        assert.Len(t, store.bookings, 1)
    })

    t.Run("allowed after completion", func(t *testing.T) {
        e, _, _ := newTestEngine(t)
        b := mustCreate(t, e, student, testNow.Add(2*time.Hour))
        _, err := e.CompleteSession(ctx, admin, b.ID, "Covered derivatives", nil)
        require.NoError(t, err)
        _, err = e.AttachMeetingLink(ctx, admin, b.ID, "https://zoom.example/j/456")
        assert.NoError(t, err)
    })

    t.Run("non-http link rejected", func(t *testing.T) {
        e, _, _ := newTestEngine(t)
        b := mustCreate(t, e, student, testNow.Add(2*time.Hour))
        _, err := e.AttachMeetingLink(ctx, admin, b.ID, "zoom.example/j/123")
        assert.True(t, IsValidation(err))
    })

    t.Run("student forbidden", func(t *testing.T) {
        e, _, _ := newTestEngine(t)
        b := mustCreate(t, e, student, testNow.Add(2*time.Hour))
        _, err := e.AttachMeetingLink(ctx, student, b.ID, "https://zoom.example/j/123")
        assert.ErrorIs(t, err, ErrForbidden)
    })
}

func TestCompleteSession(t *testing.T) {
    ctx := context.Background()

    t.Run("with notes and no resource", func(t *testing.T) {
        e, _, _ := newTestEngine(t)
        b := mustCreate(t, e, student, testNow.Add(2*time.Hour))
        got, err := e.CompleteSession(ctx, admin, b.ID, "Covered derivatives", nil)
        require.NoError(t, err)
        assert.Equal(t, model.BookingStatusCompleted, got.Status)
        require.NotNil(t, got.SessionNotes)
        assert.Equal(t, "Covered derivatives", *got.SessionNotes)
        assert.Empty(t, got.Resources)
    })

    t.Run("with resource link", func(t *testing.T) {
        e, _, _ := newTestEngine(t)
        b := mustCreate(t, e, student, testNow.Add(2*time.Hour))
        got, err := e.CompleteSession(ctx, admin, b.ID, "Worked through practice set", &model.Resource{
            URL: "https://docs.example/worksheet",
        })
        require.NoError(t, err)
        require.Len(t, got.Resources, 1)
        assert.Equal(t, "Session Resources", got.Resources[0].Title)
        assert.Equal(t, "https://docs.example/worksheet", got.Resources[0].URL)
    })

    t.Run("blank notes rejected", func(t *testing.T) {
        e, store, _ := newTestEngine(t)
        b := mustCreate(t, e, student, testNow.Add(2*time.Hour))
        _, err := e.CompleteSession(ctx, admin, b.ID, "   ", nil)
        assert.True(t, IsValidation(err))
        stored, _ := store.GetBooking(ctx, b.ID)
        assert.Equal(t, model.BookingStatusUpcoming, stored.Status)
    })

    t.Run("bad resource url rejected", func(t *testing.T) {
        e, _, _ := newTestEngine(t)
        b := mustCreate(t, e, student, testNow.Add(2*time.Hour))
        _, err := e.CompleteSession(ctx, admin, b.ID, "notes", &model.Resource{URL: "ftp://x"})
        assert.True(t, IsValidation(err))
    })

    t.Run("pending change survives completion", func(t *testing.T) {
        e, _, _ := newTestEngine(t)
        b := mustCreate(t, e, student, testNow.Add(2*time.Hour))
        _, err := e.RequestCancel(ctx, student, b.ID, "sick")
        require.NoError(t, err)
        got, err := e.CompleteSession(ctx, admin, b.ID, "held anyway", nil)
        require.NoError(t, err)
        assert.True(t, got.HasPendingChange())
        assert.Equal(t, model.BookingStatusCompleted, got.Status)
    })

    t.Run("student forbidden", func(t *testing.T) {
        e, _, _ := newTestEngine(t)
        b := mustCreate(t, e, student, testNow.Add(2*time.Hour))
        _, err := e.CompleteSession(ctx, student, b.ID, "notes", nil)
        assert.ErrorIs(t, err, ErrForbidden)
    })
}

func TestResolvePendingChange(t *testing.T) {
    ctx := context.Background()

    t.Run("approve reschedule moves start time", func(t *testing.T) {
        e, _, _ := newTestEngine(t)
        b := mustCreate(t, e, student, testNow.Add(2*time.Hour))
        requested := testNow.Add(72 * time.Hour)
        _, err := e.RequestReschedule(ctx, student, b.ID, requested, "conflict")
        require.NoError(t, err)

        got, err := e.ResolvePendingChange(ctx, admin, b.ID, DecisionApprove)
        require.NoError(t, err)
        assert.True(t, got.StartTime.Equal(requested))
        assert.False(t, got.HasPendingChange())
        assert.Nil(t, got.RequestedTime)
        assert.Nil(t, got.ChangeReason)
    })

    t.Run("approve cancel marks booking cancelled", func(t *testing.T) {
        e, _, _ := newTestEngine(t)
        b := mustCreate(t, e, student, testNow.Add(2*time.Hour))
        _, err := e.RequestCancel(ctx, student, b.ID, "sick")
        require.NoError(t, err)

        got, err := e.ResolvePendingChange(ctx, admin, b.ID, DecisionApprove)
        require.NoError(t, err)
        assert.Equal(t, model.BookingStatusCancelled, got.Status)
        assert.False(t, got.HasPendingChange())
    })

    t.Run("deny clears overlay only", func(t *testing.T) {
        e, _, _ := newTestEngine(t)
        b := mustCreate(t, e, student, testNow.Add(2*time.Hour))
        _, err := e.RequestReschedule(ctx, student, b.ID, testNow.Add(72*time.Hour), "conflict")
        require.NoError(t, err)

        got, err := e.ResolvePendingChange(ctx, admin, b.ID, DecisionDeny)
        require.NoError(t, err)
        assert.True(t, got.StartTime.Equal(b.StartTime))
        assert.Equal(t, model.BookingStatusUpcoming, got.Status)
        assert.False(t, got.HasPendingChange())
    })

    t.Run("resolution re-enables requests", func(t *testing.T) {
        e, _, _ := newTestEngine(t)
        b := mustCreate(t, e, student, testNow.Add(2*time.Hour))
        _, err := e.RequestCancel(ctx, student, b.ID, "sick")
        require.NoError(t, err)
        _, err = e.ResolvePendingChange(ctx, admin, b.ID, DecisionDeny)
        require.NoError(t, err)
        _, err = e.RequestReschedule(ctx, student, b.ID, testNow.Add(72*time.Hour), "conflict")
        assert.NoError(t, err)
    })

    t.Run("nothing pending", func(t *testing.T) {
        e, _, _ := newTestEngine(t)
        b := mustCreate(t, e, student, testNow.Add(2*time.Hour))
        _, err := e.ResolvePendingChange(ctx, admin, b.ID, DecisionApprove)
        assert.ErrorIs(t, err, ErrNoPendingChange)
    })

    t.Run("bad decision", func(t *testing.T) {
        e, _, _ := newTestEngine(t)
        b := mustCreate(t, e, student, testNow.Add(2*time.Hour))
        _, err := e.RequestCancel(ctx, student, b.ID, "sick")
        require.NoError(t, err)
        _, err = e.ResolvePendingChange(ctx, admin, b.ID, "maybe")
        assert.True(t, IsValidation(err))
    })

    t.Run("student forbidden", func(t *testing.T) {
        e, _, _ := newTestEngine(t)
        b := mustCreate(t, e, student, testNow.Add(2*time.Hour))
        _, err := e.ResolvePendingChange(ctx, student, b.ID, DecisionApprove)
        assert.ErrorIs(t, err, ErrForbidden)
    })
}

func TestUpdateGoals(t *testing.T) {
    ctx := context.Background()

    t.Run("overwrites with trimmed input", func(t *testing.T) {
        e, store, _ := newTestEngine(t)
        store.profiles[7] = &model.Profile{ID: 7, FullName: "Sam", Goals: "old goals"}
        p, err := e.UpdateGoals(ctx, admin, 7, "  ace the AP exam  ")
        require.NoError(t, err)
        assert.Equal(t, "ace the AP exam", p.Goals)
    })

    t.Run("empty string allowed", func(t *testing.T) {
        e, store, _ := newTestEngine(t)
        store.profiles[7] = &model.Profile{ID: 7, Goals: "old"}
        p, err := e.UpdateGoals(ctx, admin, 7, "   ")
        require.NoError(t, err)
        assert.Equal(t, "", p.Goals)
    })

    t.Run("missing profile", func(t *testing.T) {
        e, _, _ := newTestEngine(t)
        _, err := e.UpdateGoals(ctx, admin, 99, "goals")
        assert.ErrorIs(t, err, ErrNotFound)
    })

    t.Run("student forbidden", func(t *testing.T) {
        e, store, _ := newTestEngine(t)
        store.profiles[7] = &model.Profile{ID: 7}
        _, err := e.UpdateGoals(ctx, student, 7, "goals")
        assert.ErrorIs(t, err, ErrForbidden)
    })
}
