package payments

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lamuse/classtee-backend/pkg/config"
	"github.com/lamuse/classtee-backend/pkg/enums"
	pkgerrors "github.com/lamuse/classtee-backend/pkg/errors"
)

// ConvenienceInstructions tell the shopper how to pay at a convenience store.
type ConvenienceInstructions struct {
	PaymentNumber string    `json:"payment_number"`
	Deadline      time.Time `json:"deadline"`
}

// BankInstructions is the account the shopper transfers to.
type BankInstructions struct {
	BankName      string `json:"bank_name"`
	BranchName    string `json:"branch_name"`
	AccountType   string `json:"account_type"`
	AccountNumber string `json:"account_number"`
	AccountHolder string `json:"account_holder"`
}

// Instructions holds exactly one of the method-specific blocks.
type Instructions struct {
	Method      enums.PaymentMethod      `json:"method"`
	Convenience *ConvenienceInstructions `json:"convenience,omitempty"`
	Bank        *BankInstructions        `json:"bank,omitempty"`
}

// Result is a confirmed payment.
type Result struct {
	Amount       int64        `json:"amount"`
	Instructions Instructions `json:"instructions"`
	ConfirmedAt  time.Time    `json:"confirmed_at"`
}

// Simulator stands in for a payment provider: it waits a fixed delay and
// always succeeds. There is no timeout; a canceled context abandons the wait.
type Simulator struct {
	delay    time.Duration
	deadline time.Duration
	bank     BankInstructions
	now      func() time.Time
	number   func() string
}

// NewSimulator builds the simulator from checkout and bank settings.
func NewSimulator(checkout config.CheckoutConfig, bank config.BankConfig) *Simulator {
	return &Simulator{
		delay:    checkout.PaymentDelay,
		deadline: checkout.ConvenienceDeadline,
		bank: BankInstructions{
			BankName:      bank.BankName,
			BranchName:    bank.BranchName,
			AccountType:   bank.AccountType,
			AccountNumber: bank.AccountNumber,
			AccountHolder: bank.AccountHolder,
		},
		now:    time.Now,
		number: paymentNumber,
	}
}

// Confirm settles amount with method once the delay elapses.
func (s *Simulator) Confirm(ctx context.Context, method enums.PaymentMethod, amount int64) (Result, error) {
	if !method.IsValid() {
		return Result{}, pkgerrors.New(pkgerrors.CodeValidation, "unsupported payment method")
	}
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-timer.C:
		}
	}

	confirmedAt := s.now().UTC()
	return Result{
		Amount:       amount,
		Instructions: s.instructions(method, confirmedAt),
		ConfirmedAt:  confirmedAt,
	}, nil
}

func (s *Simulator) instructions(method enums.PaymentMethod, issuedAt time.Time) Instructions {
	out := Instructions{Method: method}
	switch method {
	case enums.PaymentMethodConvenience:
		out.Convenience = &ConvenienceInstructions{
			PaymentNumber: s.number(),
			Deadline:      issuedAt.Add(s.deadline),
		}
	case enums.PaymentMethodBank:
		bank := s.bank
		out.Bank = &bank
	}
	return out
}

// paymentNumber renders 12 random digits as NNNN-NNNN-NNNN.
func paymentNumber() string {
	id := uuid.New()
	n := binary.BigEndian.Uint64(id[:8]) % 1_000_000_000_000
	return fmt.Sprintf("%04d-%04d-%04d", n/100_000_000, (n/10_000)%10_000, n%10_000)
}
