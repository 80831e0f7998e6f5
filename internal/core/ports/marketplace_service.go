package ports

import (
	"context"

	"github.com/proton-market/marketplace-api/internal/core/domain"
)

// ProductInput describes a vendor product listing.
type ProductInput struct {
	Title     string
	Specs     *string
	Category  *string
	UnitPrice *float64
	Images    []string
}

// RequirementInput describes a buyer requirement.
type RequirementInput struct {
	Title       string
	Description *string
	Budget      *float64
	Deadline    *string
}

// ProjectInput describes an investment project.
type ProjectInput struct {
	Title          string
	Description    *string
	TargetAmount   float64
	ExpectedROIPct float64
	DurationMonths int
	Milestones     []string
}

// InvestInput describes an investment in a project.
type InvestInput struct {
	ProjectID      string
	Amount         float64
	IdempotencyKey string
}

// JobInput describes a job listing.
type JobInput struct {
	Title       string
	CompanyID   *string
	Location    *string
	Skills      []string
	MinExpYears *int
	Description *string
}

// ApplyInput describes a job application.
type ApplyInput struct {
	JobID          string
	ResumeURL      *string
	IdempotencyKey string
}

// CreatedResult is returned by every create operation.
type CreatedResult struct {
	ID      string
	Message string
	// Replayed is true when an Idempotency-Key matched an earlier request.
	Replayed bool
}

// MarketplaceService defines the collection use cases. Callers have already
// passed the access policy; ownership is applied through query filters.
type MarketplaceService interface {
	CreateProduct(ctx context.Context, caller *domain.SanitizedUser, in ProductInput) (*CreatedResult, error)
	ListMyProducts(ctx context.Context, caller *domain.SanitizedUser) ([]domain.Document, error)
	CreateRequirement(ctx context.Context, caller *domain.SanitizedUser, in RequirementInput) (*CreatedResult, error)
	ListMyRequirements(ctx context.Context, caller *domain.SanitizedUser) ([]domain.Document, error)
	CreateProject(ctx context.Context, caller *domain.SanitizedUser, in ProjectInput) (*CreatedResult, error)
	ListProjects(ctx context.Context) ([]domain.Document, error)
	Invest(ctx context.Context, caller *domain.SanitizedUser, in InvestInput) (*CreatedResult, error)
	CreateJob(ctx context.Context, caller *domain.SanitizedUser, in JobInput) (*CreatedResult, error)
	ListJobs(ctx context.Context) ([]domain.Document, error)
	Apply(ctx context.Context, caller *domain.SanitizedUser, in ApplyInput) (*CreatedResult, error)
	Overview(ctx context.Context) (*domain.Overview, error)
}
