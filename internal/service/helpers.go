package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/andrelbraga/maintkit/internal/domain"
	"github.com/andrelbraga/maintkit/internal/repository"
)

// resolvePlan looks a plan up by human code first, then by ID.
func resolvePlan(ctx context.Context, plans repository.PlanRepo, ref string) (*domain.Plan, error) {
	if ref == "" {
		return nil, fmt.Errorf("plan reference is required")
	}
	p, err := plans.GetByCode(ctx, ref)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	p, err = plans.GetByID(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("plan %q: %w", ref, err)
	}
	return p, nil
}
