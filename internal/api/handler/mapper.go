package handler

import (
	"github.com/proton-market/marketplace-api/internal/core/ports"
)

// Request → service input mappers. Handlers never pass request types into
// the core so the JSON contract can change independently.

func toProductInput(r productRequest) ports.ProductInput {
	return ports.ProductInput{
		Title:     r.Title,
		Specs:     r.Specs,
		Category:  r.Category,
		UnitPrice: r.UnitPrice,
		Images:    r.Images,
	}
}

func toRequirementInput(r requirementRequest) ports.RequirementInput {
	return ports.RequirementInput{
		Title:       r.Title,
		Description: r.Description,
		Budget:      r.Budget,
		Deadline:    r.Deadline,
	}
}

func toProjectInput(r projectRequest) ports.ProjectInput {
	return ports.ProjectInput{
		Title:          r.Title,
		Description:    r.Description,
		TargetAmount:   *r.TargetAmount,
		ExpectedROIPct: *r.ExpectedROIPct,
		DurationMonths: *r.DurationMonths,
		Milestones:     r.Milestones,
	}
}

func toInvestInput(r investRequest, idempotencyKey string) ports.InvestInput {
	return ports.InvestInput{
		ProjectID:      r.ProjectID,
		Amount:         *r.Amount,
		IdempotencyKey: idempotencyKey,
	}
}

func toJobInput(r jobRequest) ports.JobInput {
	return ports.JobInput{
		Title:       r.Title,
		CompanyID:   r.CompanyID,
		Location:    r.Location,
		Skills:      r.Skills,
		MinExpYears: r.MinExpYears,
		Description: r.Description,
	}
}

func toApplyInput(r applyRequest, idempotencyKey string) ports.ApplyInput {
	return ports.ApplyInput{
		JobID:          r.JobID,
		ResumeURL:      r.ResumeURL,
		IdempotencyKey: idempotencyKey,
	}
}

func toCreatedResponse(res *ports.CreatedResult) createdResponse {
	return createdResponse{ID: res.ID, Message: res.Message}
}
