package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/proton-market/marketplace-api/internal/core/domain"
	"github.com/proton-market/marketplace-api/internal/core/ports"
	"github.com/proton-market/marketplace-api/internal/pkg/metrics"
)

// Idempotency scopes, one per replay-protected operation.
const (
	scopeInvest = "invest"
	scopeApply  = "apply"
)

// MarketplaceService implements the collection use cases. Access has been
// decided by the policy before any method runs; methods that list "own"
// documents scope the query with the caller's id instead of filtering
// after the fetch.
type MarketplaceService struct {
	store ports.DocumentStore
	idem  ports.IdempotencyStore
	log   zerolog.Logger
}

// NewMarketplaceService wires the service. idem may be nil, which disables
// Idempotency-Key replay.
func NewMarketplaceService(store ports.DocumentStore, idem ports.IdempotencyStore, log zerolog.Logger) *MarketplaceService {
	return &MarketplaceService{store: store, idem: idem, log: log}
}

func (s *MarketplaceService) CreateProduct(ctx context.Context, caller *domain.SanitizedUser, in ports.ProductInput) (*ports.CreatedResult, error) {
	doc := domain.Document{
		"vendor_id":  caller.ID,
		"title":      in.Title,
		"specs":      in.Specs,
		"category":   in.Category,
		"unit_price": in.UnitPrice,
		"images":     orEmpty(in.Images),
		"in_stock":   true,
	}
	return s.insert(ctx, domain.CollectionProducts, doc, "Product listed")
}

func (s *MarketplaceService) ListMyProducts(ctx context.Context, caller *domain.SanitizedUser) ([]domain.Document, error) {
	return s.store.Find(ctx, domain.CollectionProducts, domain.Filter{"vendor_id": caller.ID})
}

func (s *MarketplaceService) CreateRequirement(ctx context.Context, caller *domain.SanitizedUser, in ports.RequirementInput) (*ports.CreatedResult, error) {
	doc := domain.Document{
		"buyer_id":    caller.ID,
		"title":       in.Title,
		"description": in.Description,
		"budget":      in.Budget,
		"deadline":    in.Deadline,
		"status":      domain.RequirementSubmitted,
	}
	return s.insert(ctx, domain.CollectionRequirements, doc, "Requirement posted")
}

func (s *MarketplaceService) ListMyRequirements(ctx context.Context, caller *domain.SanitizedUser) ([]domain.Document, error) {
	return s.store.Find(ctx, domain.CollectionRequirements, domain.Filter{"buyer_id": caller.ID})
}

func (s *MarketplaceService) CreateProject(ctx context.Context, caller *domain.SanitizedUser, in ports.ProjectInput) (*ports.CreatedResult, error) {
	doc := domain.Document{
		"title":            in.Title,
		"description":      in.Description,
		"target_amount":    in.TargetAmount,
		"expected_roi_pct": in.ExpectedROIPct,
		"duration_months":  in.DurationMonths,
		"milestones":       orEmpty(in.Milestones),
		"owner_vendor_id":  caller.ID,
	}
	return s.insert(ctx, domain.CollectionProjects, doc, "Project created")
}

func (s *MarketplaceService) ListProjects(ctx context.Context) ([]domain.Document, error) {
	return s.store.Find(ctx, domain.CollectionProjects, nil)
}

// Invest records an initiated transaction. No funds move.
func (s *MarketplaceService) Invest(ctx context.Context, caller *domain.SanitizedUser, in ports.InvestInput) (*ports.CreatedResult, error) {
	doc := domain.Document{
		"investor_id": caller.ID,
		"project_id":  in.ProjectID,
		"amount":      in.Amount,
		"status":      domain.TransactionInitiated,
	}
	return s.idempotent(ctx, scopeInvest+":"+caller.ID, in.IdempotencyKey, domain.CollectionTransactions, doc, "Investment initiated")
}

func (s *MarketplaceService) CreateJob(ctx context.Context, caller *domain.SanitizedUser, in ports.JobInput) (*ports.CreatedResult, error) {
	doc := domain.Document{
		"title":         in.Title,
		"company_id":    in.CompanyID,
		"location":      in.Location,
		"skills":        orEmpty(in.Skills),
		"min_exp_years": in.MinExpYears,
		"description":   in.Description,
		"posted_by":     caller.ID,
	}
	return s.insert(ctx, domain.CollectionJobs, doc, "Job posted")
}

func (s *MarketplaceService) ListJobs(ctx context.Context) ([]domain.Document, error) {
	return s.store.Find(ctx, domain.CollectionJobs, nil)
}

func (s *MarketplaceService) Apply(ctx context.Context, caller *domain.SanitizedUser, in ports.ApplyInput) (*ports.CreatedResult, error) {
	doc := domain.Document{
		"job_id":     in.JobID,
		"user_id":    caller.ID,
		"status":     domain.ApplicationApplied,
		"resume_url": in.ResumeURL,
	}
	return s.idempotent(ctx, scopeApply+":"+caller.ID, in.IdempotencyKey, domain.CollectionApplications, doc, "Application submitted")
}

// Overview counts every collection. Any store failure aborts the summary.
func (s *MarketplaceService) Overview(ctx context.Context) (*domain.Overview, error) {
	var out domain.Overview
	counts := []struct {
		collection string
		dst        *int64
	}{
		{domain.CollectionUsers, &out.Users},
		{domain.CollectionProducts, &out.Products},
		{domain.CollectionRequirements, &out.Requirements},
		{domain.CollectionProjects, &out.Projects},
		{domain.CollectionTransactions, &out.Transactions},
		{domain.CollectionJobs, &out.Jobs},
		{domain.CollectionApplications, &out.Applications},
	}

	for _, c := range counts {
		n, err := s.store.Count(ctx, c.collection, nil)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", c.collection, err)
		}
		*c.dst = n
	}
	return &out, nil
}

func (s *MarketplaceService) insert(ctx context.Context, collection string, doc domain.Document, message string) (*ports.CreatedResult, error) {
	id, err := s.store.Insert(ctx, collection, doc)
	if err != nil {
		s.log.Error().Err(err).Str("collection", collection).Msg("insert failed")
		return nil, err
	}
	metrics.DocumentsCreatedTotal.WithLabelValues(collection).Inc()
	s.log.Info().Str("collection", collection).Str("id", id).Msg("document created")
	return &ports.CreatedResult{ID: id, Message: message}, nil
}

// idempotent inserts doc at most once per key. The key is claimed before
// the insert, so a concurrent duplicate sees the claim and gets
// ErrRequestInFlight instead of inserting again. Store failures are logged
// and the request proceeds without replay protection.
func (s *MarketplaceService) idempotent(ctx context.Context, scope, key, collection string, doc domain.Document, message string) (*ports.CreatedResult, error) {
	if s.idem == nil || key == "" {
		return s.insert(ctx, collection, doc, message)
	}

	id, claimed, err := s.idem.Claim(ctx, scope, key)
	switch {
	case err != nil:
		s.log.Warn().Err(err).Str("scope", scope).Msg("idempotency claim failed, processing anyway")
		return s.insert(ctx, collection, doc, message)
	case !claimed && id != "":
		metrics.IdempotencyTotal.WithLabelValues("hit").Inc()
		s.log.Info().Str("scope", scope).Str("id", id).Msg("idempotent replay")
		return &ports.CreatedResult{ID: id, Message: message, Replayed: true}, nil
	case !claimed:
		metrics.IdempotencyTotal.WithLabelValues("in_flight").Inc()
		return nil, domain.ErrRequestInFlight
	}
	metrics.IdempotencyTotal.WithLabelValues("miss").Inc()

	res, err := s.insert(ctx, collection, doc, message)
	if err != nil {
		if relErr := s.idem.Release(ctx, scope, key); relErr != nil {
			s.log.Warn().Err(relErr).Str("scope", scope).Msg("failed to release idempotency key")
		}
		return nil, err
	}
	if err := s.idem.Complete(ctx, scope, key, res.ID); err != nil {
		s.log.Warn().Err(err).Str("scope", scope).Msg("failed to store idempotency key")
	}
	return res, nil
}

func orEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
