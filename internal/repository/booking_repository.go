package repository

import (
    "context"
    "database/sql"
    "encoding/json"
    "strings"
    "time"

    "github.com/alamtutoring/portal/internal/model"
)

// BookingRepo provides CRUD operations for bookings.  It satisfies the
// lifecycle engine's Store capabilities for bookings and adds the list
// queries used by the dashboards and the chat prompt builder.  All
// timestamp fields are stored in UTC; the resources column holds a JSON
// array.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingCols = `id, student_id, topic, start_time, status, meeting_link,
        session_notes, resources, pending_change_type, change_reason,
        requested_time, created_at, updated_at`

// scanBooking reads one bookings row from the given scanner, decoding
// nullable columns and the resources JSON array.
func scanBooking(row interface{ Scan(...interface{}) error }) (*model.Booking, error) {
    var (
        b             model.Booking
        meetingLink   sql.NullString
        sessionNotes  sql.NullString
        resourcesRaw  sql.NullString
        pendingChange sql.NullString
        changeReason  sql.NullString
        requestedTime sql.NullTime
    )
    err := row.Scan(
        &b.ID, &b.StudentID, &b.Topic, &b.StartTime, &b.Status, &meetingLink,
        &sessionNotes, &resourcesRaw, &pendingChange, &changeReason,
        &requestedTime, &b.CreatedAt, &b.UpdatedAt,
    )
    if err != nil {
        return nil, err
    }
    if meetingLink.Valid {
        v := meetingLink.String
        b.MeetingLink = &v
    }
    if sessionNotes.Valid {
        v := sessionNotes.String
        b.SessionNotes = &v
    }
    if pendingChange.Valid && pendingChange.String != "" {
        v := pendingChange.String
        b.PendingChangeType = &v
    }
    if changeReason.Valid {
        v := changeReason.String
        b.ChangeReason = &v
    }
    if requestedTime.Valid {
        v := requestedTime.Time.UTC()
        b.RequestedTime = &v
    }
    b.Resources = []model.Resource{}
    if resourcesRaw.Valid && strings.TrimSpace(resourcesRaw.String) != "" {
        // parse, don't trust: a malformed column yields an empty list
        var rs []model.Resource
        if err := json.Unmarshal([]byte(resourcesRaw.String), &rs); err == nil && rs != nil {
            b.Resources = rs
        }
    }
    b.StartTime = b.StartTime.UTC()
    return &b, nil
}

// GetBooking returns the booking with the given id, or sql.ErrNoRows.
func (r *BookingRepo) GetBooking(ctx context.Context, id uint64) (*model.Booking, error) {
    q := `SELECT ` + bookingCols + ` FROM bookings WHERE id = ?`
    return scanBooking(r.db.QueryRowContext(ctx, q, id))
}

// InsertBooking creates a new bookings row and populates the generated
// ID and timestamps on the provided record.
func (r *BookingRepo) InsertBooking(ctx context.Context, b *model.Booking) error {
    resources, err := json.Marshal(b.Resources)
    if err != nil {
        return err
    }
    const q = `INSERT INTO bookings (student_id, topic, start_time, status, resources)
               VALUES (?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, b.StudentID, b.Topic, b.StartTime.UTC(), b.Status, string(resources))
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    b.ID = uint64(id)
    // Query back the row to pick up DB-generated timestamps
    stored, err := r.GetBooking(ctx, b.ID)
    if err != nil {
        return err
    }
    *b = *stored
    return nil
}

// UpdateBooking writes all mutable booking fields for the row matching
// b.ID.  Single-row update; the database's native atomicity is the only
// concurrency guarantee (last write wins).
func (r *BookingRepo) UpdateBooking(ctx context.Context, b *model.Booking) error {
    resources, err := json.Marshal(b.Resources)
    if err != nil {
        return err
    }
    const q = `UPDATE bookings
               SET topic = ?, start_time = ?, status = ?, meeting_link = ?,
                   session_notes = ?, resources = ?, pending_change_type = ?,
                   change_reason = ?, requested_time = ?, updated_at = NOW()
               WHERE id = ?`
    var requestedTime interface{}
    if b.RequestedTime != nil {
        requestedTime = b.RequestedTime.UTC()
    }
    res, err := r.db.ExecContext(ctx, q,
        b.Topic, b.StartTime.UTC(), b.Status, nullableStr(b.MeetingLink),
        nullableStr(b.SessionNotes), string(resources), nullableStr(b.PendingChangeType),
        nullableStr(b.ChangeReason), requestedTime, b.ID,
    )
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        // the row may match its previous values; confirm it exists
        if _, err := r.GetBooking(ctx, b.ID); err != nil {
            return err
        }
    }
    return nil
}

// ListByStudent returns all bookings belonging to the given student,
// ordered by start time descending (the retrieval order observed by the
// dashboard before classification).
func (r *BookingRepo) ListByStudent(ctx context.Context, studentID uint64) ([]model.Booking, error) {
    q := `SELECT ` + bookingCols + ` FROM bookings WHERE student_id = ? ORDER BY start_time DESC`
    rows, err := r.db.QueryContext(ctx, q, studentID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Booking, 0)
    for rows.Next() {
        b, err := scanBooking(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, *b)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// AdminBooking pairs a booking with the owning student's profile fields
// shown on the admin dashboard.  The booking is embedded so its fields
// serialize flat alongside the profile columns.  Profile fields are
// nullable because a booking can exist before the student finishes
// onboarding.
type AdminBooking struct {
    model.Booking
    FullName   *string `json:"full_name"`
    GradeLevel *string `json:"grade_level"`
    Goals      *string `json:"goals"`
}

// ListAll returns every booking joined with the owning student's
// profile, ordered by start time descending.  Admin dashboard query.
func (r *BookingRepo) ListAll(ctx context.Context) ([]AdminBooking, error) {
    const q = `SELECT b.id, b.student_id, b.topic, b.start_time, b.status, b.meeting_link,
                      b.session_notes, b.resources, b.pending_change_type, b.change_reason,
                      b.requested_time, b.created_at, b.updated_at,
                      p.full_name, p.grade_level, p.goals
               FROM bookings b
               LEFT JOIN profiles p ON p.id = b.student_id
               ORDER BY b.start_time DESC`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]AdminBooking, 0)
    for rows.Next() {
        var (
            b             model.Booking
            meetingLink   sql.NullString
            sessionNotes  sql.NullString
            resourcesRaw  sql.NullString
            pendingChange sql.NullString
            changeReason  sql.NullString
            requestedTime sql.NullTime
            fullName      sql.NullString
            gradeLevel    sql.NullString
            goals         sql.NullString
        )
        if err := rows.Scan(
            &b.ID, &b.StudentID, &b.Topic, &b.StartTime, &b.Status, &meetingLink,
            &sessionNotes, &resourcesRaw, &pendingChange, &changeReason,
            &requestedTime, &b.CreatedAt, &b.UpdatedAt,
            &fullName, &gradeLevel, &goals,
        ); err != nil {
            return nil, err
        }
        if meetingLink.Valid {
            v := meetingLink.String
            b.MeetingLink = &v
        }
        if sessionNotes.Valid {
            v := sessionNotes.String
            b.SessionNotes = &v
        }
        if pendingChange.Valid && pendingChange.String != "" {
            v := pendingChange.String
            b.PendingChangeType = &v
        }
        if changeReason.Valid {
            v := changeReason.String
            b.ChangeReason = &v
        }
        if requestedTime.Valid {
            v := requestedTime.Time.UTC()
            b.RequestedTime = &v
        }
        b.Resources = []model.Resource{}
        if resourcesRaw.Valid && strings.TrimSpace(resourcesRaw.String) != "" {
            var rs []model.Resource
            if err := json.Unmarshal([]byte(resourcesRaw.String), &rs); err == nil && rs != nil {
                b.Resources = rs
            }
        }
        b.StartTime = b.StartTime.UTC()
        ab := AdminBooking{Booking: b}
        if fullName.Valid {
            v := fullName.String
            ab.FullName = &v
        }
        if gradeLevel.Valid {
            v := gradeLevel.String
            ab.GradeLevel = &v
        }
        if goals.Valid {
            v := goals.String
            ab.Goals = &v
        }
        out = append(out, ab)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// CompletedSession is the slice of a completed booking fed into the
// tutor-assistant chat prompt.
type CompletedSession struct {
    Topic        string
    SessionNotes *string
    StartTime    time.Time
}

// ListRecentCompleted returns the student's most recent completed
// sessions, newest first, up to limit rows.
func (r *BookingRepo) ListRecentCompleted(ctx context.Context, studentID uint64, limit int) ([]CompletedSession, error) {
    const q = `SELECT topic, session_notes, start_time
               FROM bookings
               WHERE student_id = ? AND status = ?
               ORDER BY start_time DESC
               LIMIT ?`
    rows, err := r.db.QueryContext(ctx, q, studentID, model.BookingStatusCompleted, limit)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]CompletedSession, 0, limit)
    for rows.Next() {
        var (
            s     CompletedSession
            notes sql.NullString
        )
        if err := rows.Scan(&s.Topic, &notes, &s.StartTime); err != nil {
            return nil, err
        }
        if notes.Valid {
            v := notes.String
            s.SessionNotes = &v
        }
        s.StartTime = s.StartTime.UTC()
        out = append(out, s)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// nullableStr converts a *string into a driver-friendly value, mapping
// nil to SQL NULL.
func nullableStr(s *string) interface{} {
    if s == nil {
        return nil
    }
    return *s
}
