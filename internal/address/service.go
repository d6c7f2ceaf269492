package address

import (
	"context"

	"github.com/lamuse/classtee-backend/pkg/errors"
	"github.com/lamuse/classtee-backend/pkg/logger"
	"github.com/lamuse/classtee-backend/pkg/types"
)

const msgAddressNotFound = "address not found"

type searcher interface {
	Search(ctx context.Context, postalCode string) (types.Address, error)
}

// Result is an address plus its single-line form for the order form.
type Result struct {
	types.Address
	Formatted string `json:"formatted"`
}

type Service interface {
	Lookup(ctx context.Context, postalCode string) (*Result, error)
}

type service struct {
	postal searcher
	logg   *logger.Logger
}

func NewService(postal searcher, logg *logger.Logger) Service {
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{postal: postal, logg: logg}
}

// Lookup resolves a postal code. Upstream failures are logged and reported
// to the shopper as not found; nothing is retried.
func (s *service) Lookup(ctx context.Context, postalCode string) (*Result, error) {
	if s == nil || s.postal == nil {
		return nil, errors.New(errors.CodeDependency, "postal lookup unavailable")
	}
	normalized := types.NormalizePostalCode(postalCode)
	if normalized == "" {
		return nil, errors.New(errors.CodeValidation, "postal code must be 7 digits").
			WithDetails(map[string]any{"postal_code": postalCode})
	}

	addr, err := s.postal.Search(ctx, normalized)
	if err != nil {
		if !errors.HasCode(err, errors.CodeNotFound) {
			s.logg.Error(s.logg.WithField(ctx, "postal_code", normalized), "address.lookup_failed", err)
		}
		return nil, errors.Wrap(errors.CodeNotFound, err, msgAddressNotFound)
	}
	return &Result{Address: addr, Formatted: addr.Formatted()}, nil
}
