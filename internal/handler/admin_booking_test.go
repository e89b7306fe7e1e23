package handler

import (
    "encoding/json"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/alamtutoring/portal/internal/model"
    "github.com/alamtutoring/portal/internal/repository"
)

func adminBooking(studentID uint64, status string) repository.AdminBooking {
    return repository.AdminBooking{
        Booking: model.Booking{StudentID: studentID, Status: status},
    }
}

func TestAggregateStats(t *testing.T) {
    bookings := []repository.AdminBooking{
        adminBooking(1, model.BookingStatusUpcoming),
        adminBooking(1, model.BookingStatusCompleted),
        adminBooking(2, model.BookingStatusCompleted),
        adminBooking(2, model.BookingStatusCancelled),
        adminBooking(3, model.BookingStatusUpcoming),
    }

    stats := aggregateStats(bookings)
    assert.Equal(t, 5, stats.TotalBookings)
    assert.Equal(t, 2, stats.PendingSessions)
    assert.Equal(t, 2, stats.CompletedHours)
    assert.Equal(t, 3, stats.UniqueStudents)
}

func TestAggregateStatsEmpty(t *testing.T) {
    stats := aggregateStats(nil)
    assert.Equal(t, adminStats{}, stats)
}

func TestAdminBookingSerializesFlat(t *testing.T) {
    name := "Sam Rivera"
    ab := adminBooking(7, model.BookingStatusUpcoming)
    ab.Topic = "AP Physics"
    ab.FullName = &name

    raw, err := json.Marshal(ab)
    require.NoError(t, err)

    var got map[string]json.RawMessage
    require.NoError(t, json.Unmarshal(raw, &got))
    assert.Contains(t, got, "student_id")
    assert.Contains(t, got, "topic")
    assert.Contains(t, got, "full_name")
    assert.NotContains(t, got, "Booking")
}
