package repository

import (
    "context"
    "database/sql"

    "github.com/alamtutoring/portal/internal/model"
)

// ProfileRepo provides CRUD operations for student profiles.  A profile
// row shares its primary key with the users table, so inserts use the
// caller's user ID rather than an auto-generated one.
type ProfileRepo struct {
    db *sql.DB
}

// NewProfileRepo returns a new ProfileRepo bound to the given database.
func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{db: db} }

// GetProfile returns the profile with the given id, or sql.ErrNoRows.
func (r *ProfileRepo) GetProfile(ctx context.Context, id uint64) (*model.Profile, error) {
    const q = `SELECT id, full_name, grade_level, phone_number, instagram_handle,
                      goals, onboarding_completed, updated_at
               FROM profiles WHERE id = ?`
    var (
        p         model.Profile
        instagram sql.NullString
    )
    err := r.db.QueryRowContext(ctx, q, id).Scan(
        &p.ID, &p.FullName, &p.GradeLevel, &p.PhoneNumber, &instagram,
        &p.Goals, &p.OnboardingCompleted, &p.UpdatedAt,
    )
    if err != nil {
        return nil, err
    }
    if instagram.Valid {
        v := instagram.String
        p.InstagramHandle = &v
    }
    return &p, nil
}

// UpsertProfile writes the full profile row, inserting or replacing the
// record keyed by p.ID.  Onboarding submits through this path.
func (r *ProfileRepo) UpsertProfile(ctx context.Context, p *model.Profile) error {
    const q = `INSERT INTO profiles (id, full_name, grade_level, phone_number,
                                     instagram_handle, goals, onboarding_completed)
               VALUES (?, ?, ?, ?, ?, ?, ?)
               ON DUPLICATE KEY UPDATE
                   full_name = VALUES(full_name),
                   grade_level = VALUES(grade_level),
                   phone_number = VALUES(phone_number),
                   instagram_handle = VALUES(instagram_handle),
                   goals = VALUES(goals),
                   onboarding_completed = VALUES(onboarding_completed)`
    _, err := r.db.ExecContext(ctx, q,
        p.ID, p.FullName, p.GradeLevel, p.PhoneNumber,
        nullableStr(p.InstagramHandle), p.Goals, p.OnboardingCompleted,
    )
    return err
}

// UpdateProfile rewrites the mutable fields of an existing profile.
// Used by the lifecycle engine's goal edit.
func (r *ProfileRepo) UpdateProfile(ctx context.Context, p *model.Profile) error {
    const q = `UPDATE profiles
               SET full_name = ?, grade_level = ?, phone_number = ?,
                   instagram_handle = ?, goals = ?, onboarding_completed = ?,
                   updated_at = NOW()
               WHERE id = ?`
    _, err := r.db.ExecContext(ctx, q,
        p.FullName, p.GradeLevel, p.PhoneNumber,
        nullableStr(p.InstagramHandle), p.Goals, p.OnboardingCompleted, p.ID,
    )
    return err
}
