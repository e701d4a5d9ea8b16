package service

import (
	"context"
	"strconv"
	"strings"

	"stakebook/internal/models"
	"stakebook/internal/repository"
)

type SelectionKind int

const (
	SelectDefault SelectionKind = iota
	SelectCustom
	SelectAll
)

// BankrollSelection names which bankroll(s) a read covers: the unnamed
// default bankroll, one named bankroll by id, or the read-only aggregate of
// all of them. Writes never go through the aggregate.
type BankrollSelection struct {
	Kind SelectionKind
	ID   uint64
}

// ParseBankrollSelection maps the wire form: "default", "all", or a numeric
// bankroll id. Anything unparseable is treated as default.
func ParseBankrollSelection(v string) BankrollSelection {
	switch strings.TrimSpace(v) {
	case "", "default":
		return BankrollSelection{Kind: SelectDefault}
	case "all":
		return BankrollSelection{Kind: SelectAll}
	}
	id, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
	if err != nil || id == 0 {
		return BankrollSelection{Kind: SelectDefault}
	}
	return BankrollSelection{Kind: SelectCustom, ID: id}
}

// BankrollRegistry owns selector resolution. It is the only analytics-facing
// component that touches the store; everything downstream computes over the
// value snapshot it hands out.
type BankrollRegistry struct {
	Repo repository.Repository
}

// Resolve turns a selection into the concrete bankroll id the dimension
// filter scopes by (nil means every bankroll). A custom id that no longer
// exists resolves with found=false — callers treat that as an empty session
// set, never as a failure.
func (r *BankrollRegistry) Resolve(ctx context.Context, sel BankrollSelection) (bankrollID *uint64, found bool, err error) {
	if r == nil || r.Repo == nil {
		return nil, false, nil
	}
	switch sel.Kind {
	case SelectAll:
		return nil, true, nil
	case SelectCustom:
		item, err := r.Repo.GetBankrollByID(ctx, sel.ID)
		if err != nil {
			return nil, false, err
		}
		if item == nil {
			return nil, false, nil
		}
		id := item.ID
		return &id, true, nil
	default:
		item, err := r.Repo.GetDefaultBankroll(ctx)
		if err != nil {
			return nil, false, err
		}
		if item == nil {
			return nil, false, nil
		}
		id := item.ID
		return &id, true, nil
	}
}

// Snapshot loads the full session collection the engine filters over. The
// unresolved case short-circuits to an empty snapshot.
func (r *BankrollRegistry) Snapshot(ctx context.Context, sel BankrollSelection) ([]models.Session, *uint64, error) {
	bankrollID, found, err := r.Resolve(ctx, sel)
	if err != nil {
		return nil, nil, err
	}
	if !found {
		return nil, nil, nil
	}
	sessions, err := r.Repo.ListAllSessions(ctx)
	if err != nil {
		return nil, nil, err
	}
	return sessions, bankrollID, nil
}

// Balance is the ledger view of a selection: deposits minus withdrawals and
// expenses, plus accumulated session profits.
func (r *BankrollRegistry) Balance(ctx context.Context, sel BankrollSelection) (int64, error) {
	if r == nil || r.Repo == nil {
		return 0, nil
	}
	bankrollID, found, err := r.Resolve(ctx, sel)
	if err != nil || !found {
		return 0, err
	}
	var scoped uint64
	if bankrollID != nil {
		scoped = *bankrollID
	}
	deposits, err := r.Repo.SumTransactions(ctx, scoped, models.TxDeposit)
	if err != nil {
		return 0, err
	}
	withdrawals, err := r.Repo.SumTransactions(ctx, scoped, models.TxWithdrawal)
	if err != nil {
		return 0, err
	}
	expenses, err := r.Repo.SumTransactions(ctx, scoped, models.TxExpense)
	if err != nil {
		return 0, err
	}
	sessions, err := r.Repo.ListAllSessions(ctx)
	if err != nil {
		return 0, err
	}
	var profits int64
	for _, s := range sessions {
		if bankrollID != nil && s.BankrollID != *bankrollID {
			continue
		}
		profits += s.Profit
	}
	return deposits - withdrawals - expenses + profits, nil
}
