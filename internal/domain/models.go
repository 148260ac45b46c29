package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of capabilities a user may hold, stored by
// name. The roles table seeds one row per name.
type Role string

const (
	RoleApplicant Role = "applicant"
	RoleReviewer  Role = "reviewer"
	RoleManager   Role = "manager"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleApplicant, RoleReviewer, RoleManager, RoleAdmin:
		return true
	}

	return false
}

// ApplicationStatus is the lifecycle state of a single application.
type ApplicationStatus string

const (
	StatusInProgress    ApplicationStatus = "in_progress"
	StatusSubmitted     ApplicationStatus = "submitted"
	StatusPendingReview ApplicationStatus = "pending_review"
	StatusAccepted      ApplicationStatus = "accepted"
	StatusRejected      ApplicationStatus = "rejected"
)

// IsDecision reports whether s is one of the two terminal decisions.
func (s ApplicationStatus) IsDecision() bool {
	return s == StatusAccepted || s == StatusRejected
}

type User struct {
	ID                uuid.UUID `db:"id"`
	Email             string    `db:"email"`
	PasswordHash      string    `db:"password_hash"`
	FullName          string    `db:"full_name"`
	Role              Role      `db:"role"`
	IsActive          bool      `db:"is_active"`
	ProfilePictureURL *string   `db:"profile_picture_url"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

type Cycle struct {
	ID          int       `db:"id"`
	Name        string    `db:"name"`
	StartDate   time.Time `db:"start_date"`
	EndDate     time.Time `db:"end_date"`
	IsActive    bool      `db:"is_active"`
	Description *string   `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

type Application struct {
	ID                 uuid.UUID         `db:"id"`
	ApplicantID        uuid.UUID         `db:"applicant_id"`
	CycleID            int               `db:"cycle_id"`
	Status             ApplicationStatus `db:"status"`
	School             string            `db:"school"`
	StudentID          string            `db:"student_id"`
	Country            string            `db:"country"`
	Degree             string            `db:"degree"`
	LeetcodeHandle     string            `db:"leetcode_handle"`
	CodeforcesHandle   string            `db:"codeforces_handle"`
	EssayWhyA2SV       string            `db:"essay_why_a2sv"`
	EssayAboutYou      string            `db:"essay_about_you"`
	ResumeURL          string            `db:"resume_url"`
	AssignedReviewerID *uuid.UUID        `db:"assigned_reviewer_id"`
	DecisionNotes      *string           `db:"decision_notes"`
	SubmittedAt        *time.Time        `db:"submitted_at"`
	UpdatedAt          time.Time         `db:"updated_at"`
}

type Review struct {
	ID                       uuid.UUID  `db:"id"`
	ApplicationID            uuid.UUID  `db:"application_id"`
	ReviewerID               *uuid.UUID `db:"reviewer_id"`
	ActivityCheckNotes       *string    `db:"activity_check_notes"`
	ResumeScore              *int       `db:"resume_score"`
	EssayWhyA2SVScore        *int       `db:"essay_why_a2sv_score"`
	EssayAboutYouScore       *int       `db:"essay_about_you_score"`
	TechnicalInterviewScore  *int       `db:"technical_interview_score"`
	BehavioralInterviewScore *int       `db:"behavioral_interview_score"`
	InterviewNotes           *string    `db:"interview_notes"`
	CreatedAt                time.Time  `db:"created_at"`
	UpdatedAt                time.Time  `db:"updated_at"`
}

// ApplicationWithNames is an application joined with the display names
// manager and reviewer listings need.
type ApplicationWithNames struct {
	Application
	ApplicantName string  `db:"applicant_name"`
	ReviewerName  *string `db:"reviewer_name"`
}

// ApplicationPatch is a partial update to an in-progress application.
// Nil means "leave unchanged"; a set pointer overwrites the field.
type ApplicationPatch struct {
	School           *string
	StudentID        *string
	Country          *string
	Degree           *string
	LeetcodeHandle   *string
	CodeforcesHandle *string
	EssayWhyA2SV     *string
	EssayAboutYou    *string
	ResumeURL        *string
}

// Apply merges the patch into app, deterministically: every non-nil
// field overwrites, every nil field is kept.
func (p ApplicationPatch) Apply(app *Application) {
	if p.School != nil {
		app.School = *p.School
	}
	if p.StudentID != nil {
		app.StudentID = *p.StudentID
	}
	if p.Country != nil {
		app.Country = *p.Country
	}
	if p.Degree != nil {
		app.Degree = *p.Degree
	}
	if p.LeetcodeHandle != nil {
		app.LeetcodeHandle = *p.LeetcodeHandle
	}
	if p.CodeforcesHandle != nil {
		app.CodeforcesHandle = *p.CodeforcesHandle
	}
	if p.EssayWhyA2SV != nil {
		app.EssayWhyA2SV = *p.EssayWhyA2SV
	}
	if p.EssayAboutYou != nil {
		app.EssayAboutYou = *p.EssayAboutYou
	}
	if p.ResumeURL != nil {
		app.ResumeURL = *p.ResumeURL
	}
}

// ReviewPatch carries the score fields of a reviewer save. Nil fields
// keep their stored values on upsert.
type ReviewPatch struct {
	ActivityCheckNotes       *string
	ResumeScore              *int
	EssayWhyA2SVScore        *int
	EssayAboutYouScore       *int
	TechnicalInterviewScore  *int
	BehavioralInterviewScore *int
	InterviewNotes           *string
}

// UserPatch is a partial update to a user record. A nil field is left
// unchanged.
type UserPatch struct {
	FullName          *string
	Email             *string
	PasswordHash      *string
	Role              *Role
	IsActive          *bool
	ProfilePictureURL *string
}

// CyclePatch is a partial update to a cycle. Activation is a separate
// operation and is deliberately not part of the patch.
type CyclePatch struct {
	Name        *string
	StartDate   *time.Time
	EndDate     *time.Time
	Description *string
}
