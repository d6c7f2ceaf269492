package catalog

import (
	"context"
	"strings"

	"github.com/lamuse/classtee-backend/pkg/enums"
	pkgerrors "github.com/lamuse/classtee-backend/pkg/errors"
)

// CategoryAll disables the category filter of List.
const CategoryAll = "all"

// Service exposes the read-only catalog.
type Service interface {
	List(ctx context.Context, category string) ([]*Product, error)
	Get(ctx context.Context, id string) (*Product, error)
	StockOf(ctx context.Context, id, color, size string) (int, error)
}

type service struct {
	ordered []*Product
	byID    map[string]*Product
}

// NewService indexes the products once; the catalog never changes afterwards.
func NewService(products []*Product) (Service, error) {
	byID := make(map[string]*Product, len(products))
	ordered := make([]*Product, 0, len(products))
	for _, p := range products {
		if p == nil {
			continue
		}
		if _, dup := byID[p.ID]; dup {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "duplicate product id "+p.ID)
		}
		byID[p.ID] = p
		ordered = append(ordered, p)
	}
	return &service{ordered: ordered, byID: byID}, nil
}

func (s *service) List(ctx context.Context, category string) ([]*Product, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" || category == CategoryAll {
		return append([]*Product(nil), s.ordered...), nil
	}
	parsed, err := enums.ParseProductCategory(category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
	}
	out := make([]*Product, 0, len(s.ordered))
	for _, p := range s.ordered {
		if p.Category == parsed {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id string) (*Product, error) {
	p, ok := s.byID[strings.TrimSpace(id)]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return p, nil
}

func (s *service) StockOf(ctx context.Context, id, color, size string) (int, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	return p.StockOf(color, size), nil
}
