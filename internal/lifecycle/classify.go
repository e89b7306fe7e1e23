package lifecycle

import (
    "sort"
    "time"

    "github.com/alamtutoring/portal/internal/model"
)

// Classified partitions a student's bookings for a given instant.  The
// partition is total and disjoint: every booking appears in exactly one
// of the two lists.
type Classified struct {
    Upcoming []model.Booking // soonest first
    Past     []model.Booking // most recent first
}

// Classify splits bookings into upcoming and past.  A booking is past
// when it is completed or cancelled, or when its start time is strictly
// before now; otherwise it is upcoming.  Upcoming sessions are sorted
// ascending by start time, past sessions descending.
func Classify(bookings []model.Booking, now time.Time) Classified {
    c := Classified{
        Upcoming: []model.Booking{},
        Past:     []model.Booking{},
    }
    for _, b := range bookings {
        if b.Status == model.BookingStatusCompleted ||
            b.Status == model.BookingStatusCancelled ||
            b.StartTime.Before(now) {
            c.Past = append(c.Past, b)
        } else {
            c.Upcoming = append(c.Upcoming, b)
        }
    }
    sort.SliceStable(c.Upcoming, func(i, j int) bool {
        return c.Upcoming[i].StartTime.Before(c.Upcoming[j].StartTime)
    })
    sort.SliceStable(c.Past, func(i, j int) bool {
        return c.Past[i].StartTime.After(c.Past[j].StartTime)
    })
    return c
}

// HoursCompleted returns the number of tutoring hours the student has
// finished, using the fixed one-hour-per-session convention.  Sessions
// cancelled before taking place do not count.
func (c Classified) HoursCompleted() int {
    n := 0
    for _, b := range c.Past {
        if b.Status != model.BookingStatusCancelled {
            n++
        }
    }
    return n
}

// NextSession returns the soonest upcoming booking, or nil when none is
// scheduled.
func (c Classified) NextSession() *model.Booking {
    if len(c.Upcoming) == 0 {
        return nil
    }
    return &c.Upcoming[0]
}
