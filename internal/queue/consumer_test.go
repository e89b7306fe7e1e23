package queue

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestFormatNotification(t *testing.T) {
    rt := "2025-03-13T12:00:00Z"
    ev := ChangeRequestedEvent{
        BookingID:     12,
        StudentID:     7,
        StudentEmail:  "student@example.com",
        Topic:         "Integration by Parts",
        ChangeType:    "reschedule",
        Reason:        "conflict",
        RequestedTime: &rt,
        RequestedAt:   "2025-03-10T12:00:00Z",
    }
    line := FormatNotification(ev)
    assert.Contains(t, line, "MOCK SMS TO ADMIN")
    assert.Contains(t, line, "student@example.com")
    assert.Contains(t, line, "requested to reschedule")
    assert.Contains(t, line, "booking_id=12")
    assert.Contains(t, line, rt)
}

func TestFormatNotificationCancel(t *testing.T) {
    line := FormatNotification(ChangeRequestedEvent{
        BookingID:    3,
        StudentEmail: "student@example.com",
        Topic:        "Limits",
        ChangeType:   "cancel",
        Reason:       "sick",
        RequestedAt:  "2025-03-10T12:00:00Z",
    })
    assert.Contains(t, line, "requested to cancel")
    assert.NotContains(t, line, "requested_time")
}
