package transfer

import (
	"context"
	"fmt"
	"time"

	"github.com/centavo/centavo/internal/utils"
	"github.com/centavo/centavo/pkg/user"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// jobTimeout bounds one invocation's transaction: if the store cannot
// complete all writes in time, the whole invocation rolls back.
const jobTimeout = 10 * time.Second

var ErrInvalidAmount = fmt.Errorf("transfer amount must be positive")

type Service interface {
	// ProcessTransfers runs the automated transfer job for the current
	// user: every current expense item with a positive cadence amount is
	// credited up to its target, each credit recorded as a ledger entry.
	// Returns the number of items funded.
	ProcessTransfers(ctx context.Context) (int, error)
	// Transfer moves funds between two of the user's budget items
	// (a manual movement; fromItemId may be zero for external funds).
	Transfer(ctx context.Context, fromItemId int, toItemId int, amount int64) (TransferLedgerEntry, error)
	GetEntries(ctx context.Context, from time.Time, to time.Time) ([]TransferLedgerEntry, error)
}

type ServiceImpl struct {
	repo  Repository
	clock utils.Clock
}

func NewService(repo Repository, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: clock}
}

func (s *ServiceImpl) ProcessTransfers(ctx context.Context) (int, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get current user: %w", err)
	}
	now := s.clock.Now()

	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	processed := 0
	err = s.repo.WithTransaction(ctx, func(repo Repository) error {
		items, err := repo.GetCurrentExpenseItems(ctx, userId, now)
		if err != nil {
			return fmt.Errorf("failed to load current expense items: %w", err)
		}

		// Sequential on purpose: each step read-modify-writes an item's
		// accumulated amount.
		for _, item := range items {
			if item.CadenceAmount <= 0 {
				continue
			}
			transferAmount := item.CadenceAmount
			// A zero target means no cap: the cadence amount is allocated
			// unconditionally.
			if item.TargetAmount != 0 {
				if remaining := item.TargetAmount - item.Amount; remaining < transferAmount {
					transferAmount = remaining
				}
			}
			if transferAmount <= 0 {
				continue
			}

			entry := TransferLedgerEntry{
				Uid:      uuid.NewString(),
				ToItemId: item.Id,
				Amount:   transferAmount,
				Date:     now,
			}
			if _, err := repo.CreateEntry(ctx, userId, entry); err != nil {
				return fmt.Errorf("failed to record transfer for item %d: %w", item.Id, err)
			}
			updated, err := repo.UpdateItemAmount(ctx, userId, item.Id, item.Amount+transferAmount)
			if err != nil {
				return fmt.Errorf("failed to credit item %d: %w", item.Id, err)
			}
			if !updated {
				return fmt.Errorf("budget item %d disappeared during transfer", item.Id)
			}
			processed++
		}
		return nil
	})
	if err != nil {
		log.Errorf("automated transfer job failed for user %d: %v", userId, err)
		return 0, err
	}
	return processed, nil
}

func (s *ServiceImpl) Transfer(ctx context.Context, fromItemId int, toItemId int, amount int64) (TransferLedgerEntry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return TransferLedgerEntry{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if amount <= 0 {
		return TransferLedgerEntry{}, ErrInvalidAmount
	}
	now := s.clock.Now()

	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	var created TransferLedgerEntry
	err = s.repo.WithTransaction(ctx, func(repo Repository) error {
		if fromItemId != 0 {
			from, err := repo.GetItem(ctx, userId, fromItemId)
			if err != nil {
				return fmt.Errorf("failed to load source item: %w", err)
			}
			if _, err := repo.UpdateItemAmount(ctx, userId, from.Id, from.Amount-amount); err != nil {
				return fmt.Errorf("failed to debit item %d: %w", from.Id, err)
			}
		}
		to, err := repo.GetItem(ctx, userId, toItemId)
		if err != nil {
			return fmt.Errorf("failed to load destination item: %w", err)
		}
		if _, err := repo.UpdateItemAmount(ctx, userId, to.Id, to.Amount+amount); err != nil {
			return fmt.Errorf("failed to credit item %d: %w", to.Id, err)
		}

		created, err = repo.CreateEntry(ctx, userId, TransferLedgerEntry{
			Uid:        uuid.NewString(),
			FromItemId: fromItemId,
			ToItemId:   toItemId,
			Amount:     amount,
			Date:       now,
		})
		if err != nil {
			return fmt.Errorf("failed to record transfer: %w", err)
		}
		return nil
	})
	if err != nil {
		return TransferLedgerEntry{}, err
	}
	return created, nil
}

func (s *ServiceImpl) GetEntries(ctx context.Context, from time.Time, to time.Time) ([]TransferLedgerEntry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetEntries(ctx, userId, from, to)
}
