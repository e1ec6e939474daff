// Package ledgerservice manages business logic layer of transaction history.
package ledgerservice

import (
	"context"

	"github.com/go-petr/point-bank/internal/domain"
)

// Repo provides data access layer interface needed by ledger service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package ledgerservice
type Repo interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.Transaction, error)
}

// Service facilitates ledger service layer logic. History reads live here,
// apart from balance mutation, so each service keeps a single responsibility.
type Service struct {
	repo Repo
}

// New returns ledger service struct to manage transaction history logic.
func New(lr Repo) *Service {
	return &Service{repo: lr}
}

// List returns the user's transaction records in append order. Users without
// records get an empty slice. No lock is taken; the read tolerates running
// next to concurrent mutations.
func (s *Service) List(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	transactions, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return transactions, nil
}
