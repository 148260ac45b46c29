package http

import "time"

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

type updateProfileRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

type updateApplicationRequest struct {
	School           *string `json:"school" validate:"omitempty,max=150"`
	StudentID        *string `json:"student_id" validate:"omitempty,max=50"`
	Country          *string `json:"country" validate:"omitempty,max=100"`
	Degree           *string `json:"degree" validate:"omitempty,max=100"`
	LeetcodeHandle   *string `json:"leetcode_handle" validate:"omitempty,max=100"`
	CodeforcesHandle *string `json:"codeforces_handle" validate:"omitempty,max=100"`
	EssayWhyA2SV     *string `json:"essay_why_a2sv" validate:"omitempty,max=5000"`
	EssayAboutYou    *string `json:"essay_about_you" validate:"omitempty,max=5000"`
}

type assignReviewerRequest struct {
	ReviewerID string `json:"reviewer_id" validate:"required,uuid"`
}

type decideApplicationRequest struct {
	Status string  `json:"status" validate:"required,oneof=accepted rejected"`
	Notes  *string `json:"decision_notes" validate:"omitempty,max=5000"`
}

type saveReviewRequest struct {
	ActivityCheckNotes       *string `json:"activity_check_notes" validate:"omitempty,max=5000"`
	ResumeScore              *int    `json:"resume_score" validate:"omitempty,score"`
	EssayWhyA2SVScore        *int    `json:"essay_why_a2sv_score" validate:"omitempty,score"`
	EssayAboutYouScore       *int    `json:"essay_about_you_score" validate:"omitempty,score"`
	TechnicalInterviewScore  *int    `json:"technical_interview_score" validate:"omitempty,score"`
	BehavioralInterviewScore *int    `json:"behavioral_interview_score" validate:"omitempty,score"`
	InterviewNotes           *string `json:"interview_notes" validate:"omitempty,max=5000"`
}

type adminCreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Role     string `json:"role" validate:"required,role"`
}

type adminUpdateUserRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=2,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Role     *string `json:"role" validate:"omitempty,role"`
	IsActive *bool   `json:"is_active"`
}

type createCycleRequest struct {
	Name        string    `json:"name" validate:"required,min=2,max=100"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required"`
	Description *string   `json:"description" validate:"omitempty,max=1000"`
}

type updateCycleRequest struct {
	Name        *string    `json:"name" validate:"omitempty,min=2,max=100"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Description *string    `json:"description" validate:"omitempty,max=1000"`
}
