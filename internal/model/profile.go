package model

import "time"

// Grade levels accepted during onboarding.
const (
    GradeMiddleSchool = "middle_school"
    GradeHighSchool   = "high_school"
    GradeCollege      = "college"
    GradeOther        = "other"
)

// ValidGradeLevel reports whether s is one of the accepted grade level
// values.
func ValidGradeLevel(s string) bool {
    switch s {
    case GradeMiddleSchool, GradeHighSchool, GradeCollege, GradeOther:
        return true
    }
    return false
}

// Profile holds the onboarding details of one registered student.  The
// primary key equals the authenticated user's ID.  A profile is written
// once through onboarding; afterwards only the goals field is editable,
// and only by an admin.
//
// Fields:
//  ID                  – user ID of the student, immutable.
//  FullName            – student's display name.
//  GradeLevel          – one of the Grade* constants.
//  PhoneNumber         – contact phone number.
//  InstagramHandle     – optional social handle.
//  Goals               – free-text tutoring goals.
//  OnboardingCompleted – true once onboarding has been submitted.
//  UpdatedAt           – last update timestamp.
type Profile struct {
    ID                  uint64    `json:"id"`                   // profiles.id (= users.id)
    FullName            string    `json:"full_name"`            // profiles.full_name
    GradeLevel          string    `json:"grade_level"`          // profiles.grade_level
    PhoneNumber         string    `json:"phone_number"`         // profiles.phone_number
    InstagramHandle     *string   `json:"instagram_handle"`     // profiles.instagram_handle (nullable)
    Goals               string    `json:"goals"`                // profiles.goals
    OnboardingCompleted bool      `json:"onboarding_completed"` // profiles.onboarding_completed
    UpdatedAt           time.Time `json:"updated_at"`           // profiles.updated_at
}
