package customers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/retailcore/pos-register-backend/pkg/enums"
	pkgerrors "github.com/retailcore/pos-register-backend/pkg/errors"
)

// Service exposes the customer directory to the register.
type Service interface {
	List(ctx context.Context) ([]Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	Create(ctx context.Context, input CreateCustomerInput) (*Customer, error)
}

type service struct {
	repo Repository
}

// NewService builds a customer service backed by the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	return &service{repo: repo}, nil
}

// CreateCustomerInput captures the data a new directory entry requires.
type CreateCustomerInput struct {
	Name  string
	Email string
	Phone string
	Tier  enums.CustomerTier
}

func (s *service) List(ctx context.Context) ([]Customer, error) {
	return s.repo.List(ctx)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Customer, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}
	return s.repo.FindByID(ctx, id)
}

func (s *service) Create(ctx context.Context, input CreateCustomerInput) (*Customer, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	tier := input.Tier
	if tier == "" {
		tier = enums.CustomerTierRegular
	}
	if !tier.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid customer tier %q", tier))
	}

	customer := Customer{
		ID:        uuid.New(),
		Name:      name,
		Email:     strings.TrimSpace(input.Email),
		Phone:     strings.TrimSpace(input.Phone),
		Tier:      tier,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Append(ctx, customer); err != nil {
		return nil, err
	}
	return &customer, nil
}
