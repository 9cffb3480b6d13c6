// audit/service.go
package audit

import (
	"context"
	"time"
)

type Service interface {
	LogDecision(ctx context.Context, log DecisionLog) error
	QueryDecisions(ctx context.Context, from, to time.Time, principal string) ([]DecisionLog, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) LogDecision(ctx context.Context, log DecisionLog) error {
	return s.repo.LogDecision(ctx, log)
}

func (s *service) QueryDecisions(ctx context.Context, from, to time.Time, principal string) ([]DecisionLog, error) {
	return s.repo.QueryDecisions(ctx, from, to, principal)
}
