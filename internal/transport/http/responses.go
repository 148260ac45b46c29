package http

import (
	"time"

	"github.com/a2sv-g68/admissions-service/internal/domain"
	"github.com/a2sv-g68/admissions-service/internal/service"
	"github.com/google/uuid"
)

// Error codes carried by the error envelope so clients can branch
// without parsing messages.
const (
	codeInvalidRequest  = "INVALID_REQUEST"
	codeValidation      = "VALIDATION_FAILED"
	codeNotFound        = "NOT_FOUND"
	codeNoActiveCycle   = "NO_ACTIVE_CYCLE"
	codeUnauthorized    = "UNAUTHORIZED"
	codeBadCredentials  = "BAD_CREDENTIALS"
	codeExpiredToken    = "TOKEN_EXPIRED"
	codeAccountInactive = "ACCOUNT_INACTIVE"
	codeForbidden       = "FORBIDDEN"
	codeAlreadyExists   = "ALREADY_EXISTS"
	codeConflict        = "CONFLICT"
	codeInternal        = "INTERNAL"
)

type successResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
}

type errorResponse struct {
	Success   bool     `json:"success"`
	Message   string   `json:"message"`
	ErrorCode string   `json:"error_code"`
	Details   []string `json:"details,omitempty"`
}

type userResponse struct {
	ID                uuid.UUID `json:"id"`
	Email             string    `json:"email"`
	FullName          string    `json:"full_name"`
	Role              string    `json:"role"`
	IsActive          bool      `json:"is_active"`
	ProfilePictureURL *string   `json:"profile_picture_url,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:                u.ID,
		Email:             u.Email,
		FullName:          u.FullName,
		Role:              string(u.Role),
		IsActive:          u.IsActive,
		ProfilePictureURL: u.ProfilePictureURL,
		CreatedAt:         u.CreatedAt,
	}
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func toTokenResponse(pair *service.TokenPair) tokenResponse {
	return tokenResponse{
		AccessToken:  pair.Access,
		RefreshToken: pair.Refresh,
	}
}

type cycleResponse struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	IsActive    bool      `json:"is_active"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toCycleResponse(c *domain.Cycle) cycleResponse {
	return cycleResponse{
		ID:          c.ID,
		Name:        c.Name,
		StartDate:   c.StartDate,
		EndDate:     c.EndDate,
		IsActive:    c.IsActive,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

type applicationResponse struct {
	ID                 uuid.UUID  `json:"id"`
	ApplicantID        uuid.UUID  `json:"applicant_id"`
	CycleID            int        `json:"cycle_id"`
	Status             string     `json:"status"`
	School             string     `json:"school"`
	StudentID          string     `json:"student_id"`
	Country            string     `json:"country"`
	Degree             string     `json:"degree"`
	LeetcodeHandle     string     `json:"leetcode_handle"`
	CodeforcesHandle   string     `json:"codeforces_handle"`
	EssayWhyA2SV       string     `json:"essay_why_a2sv"`
	EssayAboutYou      string     `json:"essay_about_you"`
	ResumeURL          string     `json:"resume_url"`
	AssignedReviewerID *uuid.UUID `json:"assigned_reviewer_id,omitempty"`
	DecisionNotes      *string    `json:"decision_notes,omitempty"`
	SubmittedAt        *time.Time `json:"submitted_at,omitempty"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func toApplicationResponse(a *domain.Application) applicationResponse {
	return applicationResponse{
		ID:                 a.ID,
		ApplicantID:        a.ApplicantID,
		CycleID:            a.CycleID,
		Status:             string(a.Status),
		School:             a.School,
		StudentID:          a.StudentID,
		Country:            a.Country,
		Degree:             a.Degree,
		LeetcodeHandle:     a.LeetcodeHandle,
		CodeforcesHandle:   a.CodeforcesHandle,
		EssayWhyA2SV:       a.EssayWhyA2SV,
		EssayAboutYou:      a.EssayAboutYou,
		ResumeURL:          a.ResumeURL,
		AssignedReviewerID: a.AssignedReviewerID,
		DecisionNotes:      a.DecisionNotes,
		SubmittedAt:        a.SubmittedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

type applicationWithNamesResponse struct {
	applicationResponse
	ApplicantName string  `json:"applicant_name"`
	ReviewerName  *string `json:"reviewer_name,omitempty"`
}

func toApplicationWithNamesResponse(a *domain.ApplicationWithNames) applicationWithNamesResponse {
	return applicationWithNamesResponse{
		applicationResponse: toApplicationResponse(&a.Application),
		ApplicantName:       a.ApplicantName,
		ReviewerName:        a.ReviewerName,
	}
}

type reviewResponse struct {
	ID                       uuid.UUID  `json:"id"`
	ApplicationID            uuid.UUID  `json:"application_id"`
	ReviewerID               *uuid.UUID `json:"reviewer_id,omitempty"`
	ActivityCheckNotes       *string    `json:"activity_check_notes,omitempty"`
	ResumeScore              *int       `json:"resume_score,omitempty"`
	EssayWhyA2SVScore        *int       `json:"essay_why_a2sv_score,omitempty"`
	EssayAboutYouScore       *int       `json:"essay_about_you_score,omitempty"`
	TechnicalInterviewScore  *int       `json:"technical_interview_score,omitempty"`
	BehavioralInterviewScore *int       `json:"behavioral_interview_score,omitempty"`
	InterviewNotes           *string    `json:"interview_notes,omitempty"`
	UpdatedAt                time.Time  `json:"updated_at"`
}

func toReviewResponse(r *domain.Review) reviewResponse {
	return reviewResponse{
		ID:                       r.ID,
		ApplicationID:            r.ApplicationID,
		ReviewerID:               r.ReviewerID,
		ActivityCheckNotes:       r.ActivityCheckNotes,
		ResumeScore:              r.ResumeScore,
		EssayWhyA2SVScore:        r.EssayWhyA2SVScore,
		EssayAboutYouScore:       r.EssayAboutYouScore,
		TechnicalInterviewScore:  r.TechnicalInterviewScore,
		BehavioralInterviewScore: r.BehavioralInterviewScore,
		InterviewNotes:           r.InterviewNotes,
		UpdatedAt:                r.UpdatedAt,
	}
}

type applicationWithReviewResponse struct {
	Application applicationWithNamesResponse `json:"application"`
	Review      *reviewResponse              `json:"review,omitempty"`
}

func toApplicationWithReviewResponse(r *service.ApplicationWithReview) applicationWithReviewResponse {
	resp := applicationWithReviewResponse{
		Application: toApplicationWithNamesResponse(r.Application),
	}

	if r.Review != nil {
		review := toReviewResponse(r.Review)
		resp.Review = &review
	}

	return resp
}

type paginatedResponse struct {
	Items      interface{} `json:"items"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int         `json:"total_pages"`
}

func newPaginatedResponse(items interface{}, total, page, limit int) paginatedResponse {
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	return paginatedResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}
