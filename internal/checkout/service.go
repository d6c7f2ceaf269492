package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/lamuse/classtee-backend/internal/coupons"
	"github.com/lamuse/classtee-backend/internal/payments"
	"github.com/lamuse/classtee-backend/internal/pricing"
	"github.com/lamuse/classtee-backend/pkg/enums"
	pkgerrors "github.com/lamuse/classtee-backend/pkg/errors"
	"github.com/lamuse/classtee-backend/pkg/logger"
	"github.com/lamuse/classtee-backend/pkg/validation"
)

// EventOrderConfirmed is published after a successful confirmation.
const EventOrderConfirmed = "order.confirmed"

type paymentConfirmer interface {
	Confirm(ctx context.Context, method enums.PaymentMethod, amount int64) (payments.Result, error)
}

type eventPublisher interface {
	PublishEvent(ctx context.Context, eventType, aggregateID string, data any) (string, error)
}

type confirmationRecorder interface {
	ObserveConfirmation(method, outcome string, duration time.Duration)
}

// Service drives an order draft from the order form to a confirmed payment.
type Service interface {
	Create(ctx context.Context, summary OrderSummary) (*DraftView, error)
	Get(ctx context.Context, id string) (*DraftView, error)
	SubmitOrderForm(ctx context.Context, id string, customer Customer) (*DraftView, error)
	ApplyCoupon(ctx context.Context, id, code string) (*DraftView, error)
	ChoosePaymentMethod(ctx context.Context, id string, method enums.PaymentMethod) (*DraftView, error)
	Confirm(ctx context.Context, id string) (*Receipt, error)
}

// ServiceParams wires the checkout collaborators. Events and Metrics are optional.
type ServiceParams struct {
	Store    DraftStore
	Coupons  coupons.Validator
	Payments paymentConfirmer
	Events   eventPublisher
	Metrics  confirmationRecorder
	Logger   *logger.Logger
}

type service struct {
	store    DraftStore
	coupons  coupons.Validator
	payments paymentConfirmer
	events   eventPublisher
	metrics  confirmationRecorder
	logg     *logger.Logger
	validate *validator.Validate
	now      func() time.Time
	newID    func() string
}

// NewService builds the checkout service.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("draft store required")
	}
	if params.Coupons == nil {
		return nil, fmt.Errorf("coupon validator required")
	}
	if params.Payments == nil {
		return nil, fmt.Errorf("payment confirmer required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		store:    params.Store,
		coupons:  params.Coupons,
		payments: params.Payments,
		events:   params.Events,
		metrics:  params.Metrics,
		logg:     logg,
		validate: validation.New(),
		now:      time.Now,
		newID:    uuid.NewString,
	}, nil
}

func (s *service) Create(ctx context.Context, summary OrderSummary) (*DraftView, error) {
	if err := summary.Validate(); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	draft := &Draft{
		ID:        s.newID(),
		Summary:   summary,
		Status:    enums.CheckoutStatusAwaitingForm,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Save(ctx, draft); err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithOrderID(ctx, draft.ID), "checkout.draft_created")
	return viewOf(draft), nil
}

func (s *service) Get(ctx context.Context, id string) (*DraftView, error) {
	draft, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return viewOf(draft), nil
}

func (s *service) SubmitOrderForm(ctx context.Context, id string, customer Customer) (*DraftView, error) {
	draft, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ensureEditable(draft); err != nil {
		return nil, err
	}
	customer = trimCustomer(customer)
	if err := s.validate.Struct(customer); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order form")
	}

	draft.Customer = &customer
	if draft.Status == enums.CheckoutStatusAwaitingForm {
		draft.Status = enums.CheckoutStatusAwaitingPaymentMethod
	}
	return s.save(ctx, draft)
}

// ApplyCoupon freezes the coupon discount against the current final price.
// The order summary is immutable so the frozen amount cannot go stale.
func (s *service) ApplyCoupon(ctx context.Context, id, code string) (*DraftView, error) {
	draft, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ensureEditable(draft); err != nil {
		return nil, err
	}
	if draft.CouponApplied {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "a coupon has already been applied").
			WithDetails(map[string]any{"coupon_code": draft.CouponCode, "coupon_discount": draft.CouponDiscount})
	}

	coupon, ok, err := s.coupons.Validate(ctx, code)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "coupon validation unavailable")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid coupon code")
	}

	draft.CouponCode = coupon.Code
	draft.CouponPercent = coupon.Percent
	draft.CouponDiscount = pricing.CouponDiscount(draft.Summary.FinalPrice, coupon.Percent)
	draft.CouponApplied = true
	return s.save(ctx, draft)
}

func (s *service) ChoosePaymentMethod(ctx context.Context, id string, method enums.PaymentMethod) (*DraftView, error) {
	if !method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported payment method")
	}
	draft, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	switch draft.Status {
	case enums.CheckoutStatusAwaitingPaymentMethod, enums.CheckoutStatusAwaitingConfirmation:
	case enums.CheckoutStatusAwaitingForm:
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "submit the order form first")
	default:
		return nil, confirmationInProgress()
	}

	draft.PaymentMethod = method
	draft.Status = enums.CheckoutStatusAwaitingConfirmation
	return s.save(ctx, draft)
}

func (s *service) Confirm(ctx context.Context, id string) (*Receipt, error) {
	ctx = s.logg.WithOrderID(ctx, id)
	draft, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkConfirmable(draft); err != nil {
		return nil, err
	}

	locked, err := s.store.AcquireConfirmLock(ctx, id)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, confirmationInProgress()
	}

	// The first read happened before the lock; another confirmation may
	// have finished or the draft may have changed in between.
	draft, err = s.load(ctx, id)
	if err == nil {
		err = checkConfirmable(draft)
	}
	if err != nil {
		s.releaseLock(ctx, id)
		return nil, err
	}

	draft.Status = enums.CheckoutStatusConfirming
	if _, err := s.save(ctx, draft); err != nil {
		s.releaseLock(ctx, id)
		return nil, err
	}

	started := s.now()
	amount := draft.PayableTotal()
	result, err := s.payments.Confirm(ctx, draft.PaymentMethod, amount)
	if err != nil {
		s.observe(draft.PaymentMethod, "failed", s.now().Sub(started))
		s.abandonConfirmation(ctx, draft)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "payment confirmation abandoned")
		}
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "payment confirmation failed")
	}
	s.observe(draft.PaymentMethod, "success", s.now().Sub(started))

	receipt := &Receipt{
		OrderID:        draft.ID,
		Status:         enums.CheckoutStatusConfirmed,
		Summary:        draft.Summary,
		CouponCode:     draft.CouponCode,
		CouponDiscount: draft.CouponDiscount,
		PayableTotal:   amount,
		Instructions:   result.Instructions,
		ConfirmedAt:    result.ConfirmedAt,
	}
	if draft.Customer != nil {
		receipt.Customer = *draft.Customer
	}

	cleanupCtx := context.WithoutCancel(ctx)
	s.publish(cleanupCtx, receipt)
	if err := s.store.Delete(cleanupCtx, id); err != nil {
		s.logg.Error(cleanupCtx, "checkout.draft_delete_failed", err)
	}
	s.releaseLock(cleanupCtx, id)

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"payment_method": draft.PaymentMethod,
		"payable_total":  amount,
	}), "checkout.confirmed")
	return receipt, nil
}

// abandonConfirmation puts the draft back so the shopper can retry by hand.
func (s *service) abandonConfirmation(ctx context.Context, draft *Draft) {
	ctx = context.WithoutCancel(ctx)
	draft.Status = enums.CheckoutStatusAwaitingConfirmation
	if _, err := s.save(ctx, draft); err != nil {
		s.logg.Error(ctx, "checkout.restore_draft_failed", err)
	}
	s.releaseLock(ctx, draft.ID)
	s.logg.Warn(ctx, "checkout.confirmation_abandoned")
}

func (s *service) publish(ctx context.Context, receipt *Receipt) {
	if s.events == nil {
		return
	}
	eventID, err := s.events.PublishEvent(ctx, EventOrderConfirmed, receipt.OrderID, receipt)
	if err != nil {
		s.logg.Error(ctx, "checkout.publish_failed", err)
		return
	}
	s.logg.Info(s.logg.WithField(ctx, "event_id", eventID), "checkout.event_published")
}

func (s *service) releaseLock(ctx context.Context, id string) {
	if err := s.store.ReleaseConfirmLock(ctx, id); err != nil {
		s.logg.Error(ctx, "checkout.release_lock_failed", err)
	}
}

func (s *service) observe(method enums.PaymentMethod, outcome string, d time.Duration) {
	if s.metrics != nil {
		s.metrics.ObserveConfirmation(method.String(), outcome, d)
	}
}

func (s *service) load(ctx context.Context, id string) (*Draft, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, msgOrderNotFound)
	}
	return s.store.Load(ctx, id)
}

func (s *service) save(ctx context.Context, draft *Draft) (*DraftView, error) {
	draft.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, draft); err != nil {
		return nil, err
	}
	return viewOf(draft), nil
}

func ensureEditable(draft *Draft) error {
	if draft.Status == enums.CheckoutStatusConfirming {
		return confirmationInProgress()
	}
	return nil
}

func checkConfirmable(draft *Draft) error {
	switch draft.Status {
	case enums.CheckoutStatusAwaitingConfirmation:
		return nil
	case enums.CheckoutStatusConfirming:
		return confirmationInProgress()
	default:
		return pkgerrors.New(pkgerrors.CodeStateConflict, "order is not ready for confirmation").
			WithDetails(map[string]any{"status": draft.Status})
	}
}

func confirmationInProgress() error {
	return pkgerrors.New(pkgerrors.CodeStateConflict, "payment confirmation already in progress")
}

func trimCustomer(c Customer) Customer {
	for _, field := range []*string{&c.Name, &c.NameKana, &c.Email, &c.Phone, &c.PostalCode, &c.Prefecture, &c.Address, &c.Building, &c.Note} {
		*field = strings.TrimSpace(*field)
	}
	return c
}
