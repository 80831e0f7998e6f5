package handler

import (
	"time"

	"github.com/proton-market/marketplace-api/internal/core/domain"
)

// errorResponse documents the error envelope rendered by the HTTP error handler.
type errorResponse struct {
	Detail string `json:"detail"`
}

// messageResponse is a bare informational reply.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type signupRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,maxbytes=72"`
	Role     string `json:"role"     validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	AccessToken string                `json:"access_token"`
	TokenType   string                `json:"token_type"`
	User        *domain.SanitizedUser `json:"user"`
}

// --- Collections ---

type productRequest struct {
	Title     string   `json:"title"      validate:"required"`
	Specs     *string  `json:"specs"`
	Category  *string  `json:"category"`
	UnitPrice *float64 `json:"unit_price" validate:"omitempty,gte=0"`
	Images    []string `json:"images"`
}

type requirementRequest struct {
	Title       string   `json:"title"       validate:"required"`
	Description *string  `json:"description"`
	Budget      *float64 `json:"budget"      validate:"omitempty,gte=0"`
	Deadline    *string  `json:"deadline"`
}

// Numeric fields the payload must carry are pointers so that "required"
// means present rather than non-zero.
type projectRequest struct {
	Title          string   `json:"title"            validate:"required"`
	Description    *string  `json:"description"`
	TargetAmount   *float64 `json:"target_amount"    validate:"required"`
	ExpectedROIPct *float64 `json:"expected_roi_pct" validate:"required"`
	DurationMonths *int     `json:"duration_months"  validate:"required"`
	Milestones     []string `json:"milestones"`
}

type investRequest struct {
	ProjectID string   `json:"project_id" validate:"required"`
	Amount    *float64 `json:"amount"     validate:"required"`
}

type jobRequest struct {
	Title       string   `json:"title"         validate:"required"`
	CompanyID   *string  `json:"company_id"`
	Location    *string  `json:"location"`
	Skills      []string `json:"skills"`
	MinExpYears *int     `json:"min_exp_years" validate:"omitempty,gte=0"`
	Description *string  `json:"description"`
}

type applyRequest struct {
	JobID     string  `json:"job_id"     validate:"required"`
	ResumeURL *string `json:"resume_url" validate:"omitempty,url"`
}

type createdResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// --- Admin ---

type userStatusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// --- Info ---

type schemaResponse struct {
	Collections []string `json:"collections"`
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	CheckedAt    time.Time                   `json:"checked_at"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}
