package reconcile

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/saveup/saveup/internal/chain"
	"github.com/saveup/saveup/internal/domain"
	"github.com/saveup/saveup/internal/service/depositservice"
	"github.com/saveup/saveup/pkg/money"
)

const (
	creditRetries  = 3
	creditBackoff  = time.Second
	maxAttempts    = 10
	updateInterval = time.Second * 5
)

// Submitter is the chain-facing surface the flow needs: allowance reads,
// tx submission and receipt polling.
type Submitter interface {
	SubmitterAddress() (common.Address, error)
	Allowance(ctx context.Context, owner common.Address) (*big.Int, error)
	SubmitApproval(ctx context.Context, amount *big.Int) (common.Hash, error)
	SubmitContribution(ctx context.Context, challengeID int64, amount *big.Int) (common.Hash, error)
	WaitForReceipt(ctx context.Context, txHash common.Hash) (chain.TxState, *types.Receipt, error)
}

// Ledger is the off-chain side: durable pending records and idempotent
// credits.
type Ledger interface {
	RecordPending(ctx context.Context, challengeID, fid, amount int64, txHash string) (*domain.Contribution, error)
	Credit(ctx context.Context, contribution *domain.Contribution) error
}

type ContributionRepo interface {
	FindForProcessing(ctx context.Context, limit uint32) ([]domain.Contribution, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	IncrementAttempts(ctx context.Context, id int64) error
}

var (
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrAllowanceShort = errors.New("allowance still below requested amount after approval")
	ErrTxReverted     = errors.New("transaction reverted on-chain")
)

var processingTxs sync.Map

type Service struct {
	submitter        Submitter
	ledger           Ledger
	contributionRepo ContributionRepo
	limit            uint32
	workerPool       WorkerPoolI
	updateInterval   time.Duration
}

func New(submitter Submitter, ledger Ledger, contributionRepo ContributionRepo) *Service {
	return &Service{
		submitter:        submitter,
		ledger:           ledger,
		contributionRepo: contributionRepo,
		limit:            1000,
		workerPool:       NewWorkerPool(10),
		updateInterval:   updateInterval,
	}
}

// Contribute drives a contribution end to end: check allowance, approve
// if short, re-check, submit, then settle against the receipt. Chain
// errors before a tx handle exists abort with no ledger write.
func (s *Service) Contribute(ctx context.Context, challengeID, fid, amount int64) (*domain.Contribution, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	owner, err := s.submitter.SubmitterAddress()
	if err != nil {
		return nil, err
	}
	if err := s.ensureAllowance(ctx, owner, amount); err != nil {
		return nil, err
	}

	txHash, err := s.submitter.SubmitContribution(ctx, challengeID, money.ToWei(amount))
	if err != nil {
		zap.L().Error("contribution submission failed", zap.Error(err),
			zap.Int64("challengeID", challengeID), zap.Int64("fid", fid))
		return nil, err
	}

	contribution, err := s.ledger.RecordPending(ctx, challengeID, fid, amount, txHash.Hex())
	if err != nil {
		// The tx is on-chain either way; the reconciler cannot find it
		// without the pending row, so this must be surfaced loudly.
		zap.L().Error("failed to record pending contribution", zap.Error(err),
			zap.String("tx", txHash.Hex()))
		return nil, fmt.Errorf("tx %s submitted but not recorded: %w", txHash.Hex(), err)
	}

	if err := s.settle(ctx, contribution, txHash); err != nil {
		return contribution, err
	}
	return contribution, nil
}

// ensureAllowance applies the gate: a short or unreadable allowance
// triggers an approval, and the allowance is re-read afterwards rather
// than assumed.
func (s *Service) ensureAllowance(ctx context.Context, owner common.Address, amount int64) error {
	allowance, err := s.submitter.Allowance(ctx, owner)
	if err != nil {
		zap.L().Warn("allowance read failed, assuming approval needed", zap.Error(err))
		allowance = nil
	}
	if chain.EvaluateAllowance(amount, allowance) == chain.ReadyToContribute {
		return nil
	}

	approveHash, err := s.submitter.SubmitApproval(ctx, money.ToWei(amount))
	if err != nil {
		return err
	}
	state, _, err := s.submitter.WaitForReceipt(ctx, approveHash)
	if err != nil {
		return err
	}
	if state != chain.TxConfirmed {
		return fmt.Errorf("%w: approval %s", ErrTxReverted, approveHash.Hex())
	}

	allowance, err = s.submitter.Allowance(ctx, owner)
	if err != nil {
		return err
	}
	if chain.EvaluateAllowance(amount, allowance) != chain.ReadyToContribute {
		return ErrAllowanceShort
	}
	return nil
}

// settle resolves a freshly submitted contribution against its receipt.
// A timed-out receipt leaves the row pending for the background loop.
func (s *Service) settle(ctx context.Context, contribution *domain.Contribution, txHash common.Hash) error {
	state, _, err := s.submitter.WaitForReceipt(ctx, txHash)
	if err != nil && state != chain.TxTimedOut {
		return err
	}

	switch state {
	case chain.TxConfirmed:
		return s.credit(ctx, contribution)
	case chain.TxReverted:
		if err := s.contributionRepo.UpdateStatus(ctx, contribution.ID, depositservice.StatusReverted); err != nil {
			return err
		}
		return fmt.Errorf("%w: %s", ErrTxReverted, txHash.Hex())
	default:
		zap.L().Warn("receipt not seen in time, leaving contribution pending",
			zap.String("tx", txHash.Hex()))
		return nil
	}
}

// credit applies the ledger update with a few bounded retries. The chain
// state is already final here, so a ledger failure is surfaced and left
// pending rather than rolled back.
func (s *Service) credit(ctx context.Context, contribution *domain.Contribution) error {
	backoff := retry.WithMaxRetries(creditRetries, retry.NewConstant(creditBackoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := s.ledger.Credit(ctx, contribution)
		if err != nil && !errors.Is(err, depositservice.ErrAlreadyCredited) {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		zap.L().Error("ledger credit failed after confirmed tx", zap.Error(err),
			zap.String("tx", contribution.TxHash), zap.Int64("challengeID", contribution.ChallengeID))
		return err
	}
	return nil
}

// Start launches the background loop that re-drives pending
// contributions until each one confirms, reverts or expires.
func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Reconcile service started")
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.updateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping reconciler")
			return
		case <-ticker.C:
			s.processPending(ctx)
		}
	}
}

func (s *Service) processPending(ctx context.Context) {
	pending, err := s.contributionRepo.FindForProcessing(ctx, atomic.LoadUint32(&s.limit))
	if err != nil {
		zap.L().Error("Failed to fetch pending contributions", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, contribution := range pending {
		contribution := contribution

		if _, loaded := processingTxs.LoadOrStore(contribution.TxHash, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer processingTxs.Delete(contribution.TxHash)
				return s.handleContribution(ctx, contribution)
			})
			if err != nil {
				processingTxs.Delete(contribution.TxHash)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error processing pending contributions", zap.Error(err))
	}
}

func (s *Service) handleContribution(ctx context.Context, contribution domain.Contribution) error {
	state, _, err := s.submitter.WaitForReceipt(ctx, common.HexToHash(contribution.TxHash))
	if err != nil && state != chain.TxTimedOut {
		return fmt.Errorf("receipt lookup for %s: %w", contribution.TxHash, err)
	}

	switch state {
	case chain.TxConfirmed:
		return s.credit(ctx, &contribution)
	case chain.TxReverted:
		zap.L().Info("pending contribution reverted on-chain",
			zap.String("tx", contribution.TxHash))
		return s.contributionRepo.UpdateStatus(ctx, contribution.ID, depositservice.StatusReverted)
	default:
		if contribution.Attempts+1 >= maxAttempts {
			zap.L().Warn("contribution expired without a receipt",
				zap.String("tx", contribution.TxHash), zap.Int("attempts", contribution.Attempts+1))
			return s.contributionRepo.UpdateStatus(ctx, contribution.ID, depositservice.StatusExpired)
		}
		return s.contributionRepo.IncrementAttempts(ctx, contribution.ID)
	}
}
