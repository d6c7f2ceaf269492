package selection

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lamuse/classtee-backend/internal/catalog"
	"github.com/lamuse/classtee-backend/internal/checkout"
	"github.com/lamuse/classtee-backend/internal/pricing"
	pkgerrors "github.com/lamuse/classtee-backend/pkg/errors"
	"github.com/lamuse/classtee-backend/pkg/logger"
)

const (
	eventStart           = "start"
	eventSelectColor     = "select_color"
	eventSetQuantity     = "set_quantity"
	eventSetSpec         = "set_specification"
	eventTeacherDiscount = "set_teacher_discount"
	eventReset           = "reset"
	eventHandoff         = "handoff"
)

type draftCreator interface {
	Create(ctx context.Context, summary checkout.OrderSummary) (*checkout.DraftView, error)
}

type eventRecorder interface {
	IncSelectionEvent(event string)
}

// Service applies one shopper event per call to a stored session and
// returns the recomputed summary.
type Service interface {
	Start(ctx context.Context, productID string) (*Summary, error)
	Get(ctx context.Context, id string) (*Summary, error)
	SelectColor(ctx context.Context, id, color string) (*Summary, error)
	SetQuantity(ctx context.Context, id, color, size string, quantity int) (*Summary, error)
	SetSpecification(ctx context.Context, id string, spec pricing.Specification) (*Summary, error)
	SetTeacherDiscount(ctx context.Context, id string, enabled bool) (*Summary, error)
	Reset(ctx context.Context, id string) (*Summary, error)
	Handoff(ctx context.Context, id string) (*checkout.DraftView, error)
}

type ServiceParams struct {
	Catalog  catalog.Service
	Pricing  pricer
	Store    SessionStore
	Checkout draftCreator
	Metrics  eventRecorder
	Logger   *logger.Logger
}

type service struct {
	catalog  catalog.Service
	pricing  pricer
	store    SessionStore
	checkout draftCreator
	metrics  eventRecorder
	logg     *logger.Logger
	now      func() time.Time
	newID    func() string
}

func NewService(params ServiceParams) (Service, error) {
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	if params.Pricing == nil {
		return nil, fmt.Errorf("pricing engine required")
	}
	if params.Store == nil {
		return nil, fmt.Errorf("session store required")
	}
	if params.Checkout == nil {
		return nil, fmt.Errorf("checkout service required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		catalog:  params.Catalog,
		pricing:  params.Pricing,
		store:    params.Store,
		checkout: params.Checkout,
		metrics:  params.Metrics,
		logg:     logg,
		now:      time.Now,
		newID:    uuid.NewString,
	}, nil
}

func (s *service) Start(ctx context.Context, productID string) (*Summary, error) {
	product, err := s.catalog.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	agg, err := NewAggregator(product)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	session := agg.Snapshot(s.newID())
	session.CreatedAt = now
	session.UpdatedAt = now
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	s.record(eventStart)
	s.logg.Info(s.logg.WithSessionID(s.logg.WithProductID(ctx, product.ID), session.ID), "selection.started")
	return s.summarize(ctx, agg, session.ID), nil
}

func (s *service) Get(ctx context.Context, id string) (*Summary, error) {
	agg, _, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, agg, id), nil
}

func (s *service) SelectColor(ctx context.Context, id, color string) (*Summary, error) {
	return s.apply(ctx, id, eventSelectColor, func(agg *Aggregator) error {
		return agg.SelectColor(color)
	})
}

func (s *service) SetQuantity(ctx context.Context, id, color, size string, quantity int) (*Summary, error) {
	return s.apply(ctx, id, eventSetQuantity, func(agg *Aggregator) error {
		return agg.SetQuantity(color, size, quantity)
	})
}

func (s *service) SetSpecification(ctx context.Context, id string, spec pricing.Specification) (*Summary, error) {
	return s.apply(ctx, id, eventSetSpec, func(agg *Aggregator) error {
		agg.SetSpecification(spec)
		return nil
	})
}

func (s *service) SetTeacherDiscount(ctx context.Context, id string, enabled bool) (*Summary, error) {
	return s.apply(ctx, id, eventTeacherDiscount, func(agg *Aggregator) error {
		agg.SetTeacherDiscount(enabled)
		return nil
	})
}

func (s *service) Reset(ctx context.Context, id string) (*Summary, error) {
	return s.apply(ctx, id, eventReset, func(agg *Aggregator) error {
		agg.Reset()
		return nil
	})
}

// Handoff transfers the selection to checkout. The session is gone afterwards.
func (s *service) Handoff(ctx context.Context, id string) (*checkout.DraftView, error) {
	agg, _, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	summary, err := agg.OrderSummary(ctx, s.pricing)
	if err != nil {
		return nil, err
	}
	draft, err := s.checkout.Create(ctx, summary)
	if err != nil {
		return nil, err
	}
	ctx = s.logg.WithOrderID(s.logg.WithSessionID(ctx, id), draft.ID)
	if err := s.store.Delete(ctx, id); err != nil {
		s.logg.Error(ctx, "selection.delete_failed", err)
	}
	s.record(eventHandoff)
	s.logg.Info(ctx, "selection.handed_off")
	return draft, nil
}

func (s *service) apply(ctx context.Context, id, event string, mutate func(*Aggregator) error) (*Summary, error) {
	agg, session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := mutate(agg); err != nil {
		return nil, err
	}
	next := agg.Snapshot(session.ID)
	next.CreatedAt = session.CreatedAt
	next.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, next); err != nil {
		return nil, err
	}
	s.record(event)
	s.logg.Debug(s.logg.WithFields(ctx, map[string]any{"session_id": id, "event": event}), "selection.event_applied")
	return s.summarize(ctx, agg, session.ID), nil
}

func (s *service) load(ctx context.Context, id string) (*Aggregator, Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, Session{}, pkgerrors.New(pkgerrors.CodeNotFound, msgSessionNotFound)
	}
	session, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, Session{}, err
	}
	product, err := s.catalog.Get(ctx, session.ProductID)
	if err != nil {
		if pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
			return nil, Session{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found; please restart selection")
		}
		return nil, Session{}, err
	}
	agg, err := Restore(product, session)
	if err != nil {
		return nil, Session{}, err
	}
	return agg, session, nil
}

func (s *service) summarize(ctx context.Context, agg *Aggregator, id string) *Summary {
	summary := agg.Summary(ctx, s.pricing)
	summary.SessionID = id
	return &summary
}

func (s *service) record(event string) {
	if s.metrics != nil {
		s.metrics.IncSelectionEvent(event)
	}
}
