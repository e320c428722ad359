// Package miner runs the "create block" flow on top of a ledger: it searches
// a proof for the last sealed block, credits the miner reward and seals the
// pending pool.
package miner

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/gabapcia/minichain/internal/ledger"
	"github.com/gabapcia/minichain/internal/pkg/logger"
	"github.com/gabapcia/minichain/internal/pkg/resilience/retry"
	"github.com/gabapcia/minichain/internal/pow"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/gabapcia/minichain/internal/miner"

// Ledger is the subset of *ledger.Ledger the miner drives.
type Ledger interface {
	LastProof() (uint64, error)
	Mint(ctx context.Context, recipient string, amount decimal.Decimal) (int, error)
	SealBlock(ctx context.Context, proof uint64) (ledger.Block, error)
}

var _ Ledger = (*ledger.Ledger)(nil)

// Service mines blocks.
type Service interface {
	// Mine seals every pending transaction, plus the miner reward, into a new
	// block and returns it.
	//
	// The proof search starts with a small iteration budget that doubles on each
	// attempt. If every attempt is exhausted pow.ErrProofNotFound is returned and
	// the ledger is left untouched.
	Mine(ctx context.Context) (ledger.Block, error)
}

// config holds the miner settings.
type config struct {
	rewardAccount string          // account credited for each mined block
	rewardAmount  decimal.Decimal // amount minted to rewardAccount
	attempts      uint            // proof search attempts
	initialBudget uint64          // iterations allowed on the first attempt, 0 is unbounded
	retryDelay    time.Duration   // base delay between attempts
}

// Option configures the miner.
type Option func(*config)

// WithReward sets the account and amount minted for each block.
func WithReward(account string, amount decimal.Decimal) Option {
	return func(c *config) {
		c.rewardAccount = account
		c.rewardAmount = amount
	}
}

// WithAttempts sets how many budgets are tried before giving up.
func WithAttempts(n uint) Option {
	return func(c *config) {
		c.attempts = n
	}
}

// WithInitialBudget sets the iterations allowed on the first attempt.
func WithInitialBudget(n uint64) Option {
	return func(c *config) {
		c.initialBudget = n
	}
}

// WithRetryDelay sets the base backoff delay between attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(c *config) {
		c.retryDelay = d
	}
}

type service struct {
	cfg    config
	ledger Ledger
	puzzle *pow.Puzzle

	tracer           trace.Tracer
	blocksSealed     metric.Int64Counter
	searchIterations metric.Int64Histogram
}

var _ Service = (*service)(nil)

// New creates a miner for l that solves proofs with p. Telemetry is reported
// through the global OpenTelemetry providers.
//
// Defaults: reward of 1 to "minerA", 5 attempts, initial budget of 64
// iterations, 10ms retry delay.
func New(l Ledger, p *pow.Puzzle, opts ...Option) (*service, error) {
	cfg := config{
		rewardAccount: "minerA",
		rewardAmount:  decimal.NewFromInt(1),
		attempts:      5,
		initialBudget: 64,
		retryDelay:    10 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	meter := otel.Meter(instrumentationName)

	blocksSealed, err := meter.Int64Counter(
		"minichain.miner.blocks_sealed",
		metric.WithDescription("Number of blocks sealed by the miner."),
	)
	if err != nil {
		return nil, err
	}

	searchIterations, err := meter.Int64Histogram(
		"minichain.miner.search_iterations",
		metric.WithDescription("Candidates tested to find an accepted proof."),
	)
	if err != nil {
		return nil, err
	}

	return &service{
		cfg:              cfg,
		ledger:           l,
		puzzle:           p,
		tracer:           otel.Tracer(instrumentationName),
		blocksSealed:     blocksSealed,
		searchIterations: searchIterations,
	}, nil
}

// fail records err on span and returns it.
func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// Mine implements Service.
func (s *service) Mine(ctx context.Context) (ledger.Block, error) {
	roundID := uuid.Must(uuid.NewV7()).String()

	ctx, span := s.tracer.Start(ctx, "miner.Mine", trace.WithAttributes(attribute.String("round.id", roundID)))
	defer span.End()

	lastProof, err := s.ledger.LastProof()
	if err != nil {
		return ledger.Block{}, fail(span, err)
	}

	proof, err := s.searchProof(ctx, roundID, lastProof)
	if err != nil {
		logger.Error(ctx, "proof search failed", "roundID", roundID, "lastProof", lastProof, "error", err)
		return ledger.Block{}, fail(span, err)
	}

	// the reward is admitted only once a proof is in hand so a failed search
	// leaves the pending pool as it was
	if _, err := s.ledger.Mint(ctx, s.cfg.rewardAccount, s.cfg.rewardAmount); err != nil {
		return ledger.Block{}, fail(span, err)
	}

	block, err := s.ledger.SealBlock(ctx, proof)
	if err != nil {
		return ledger.Block{}, fail(span, err)
	}

	s.blocksSealed.Add(ctx, 1)
	s.searchIterations.Record(ctx, int64(proof)+1)
	span.SetAttributes(
		attribute.Int("block.index", block.Index),
		attribute.Int64("block.proof", int64(proof)),
		attribute.Int("block.transactions", len(block.Transactions)),
	)

	logger.Info(ctx, "block mined",
		"roundID", roundID,
		"index", block.Index,
		"proof", proof,
		"rewardAccount", s.cfg.rewardAccount,
		"reward", s.cfg.rewardAmount.String(),
	)

	return block, nil
}

// searchProof looks for a proof, doubling the iteration budget after each
// exhausted attempt.
func (s *service) searchProof(ctx context.Context, roundID string, lastProof uint64) (uint64, error) {
	return retry.Do(ctx, func(attempt uint) (uint64, error) {
		proof, err := s.puzzle.SearchN(ctx, lastProof, s.budget(attempt))
		if err != nil && !errors.Is(err, pow.ErrProofNotFound) {
			return 0, retry.Unrecoverable(err)
		}

		return proof, err
	},
		retry.WithAttempts(s.cfg.attempts),
		retry.WithDelay(s.cfg.retryDelay),
		retry.WithMaxDelay(time.Second),
		retry.WithOnRetry(func(attempt uint, err error) {
			logger.Debug(ctx, "proof search exhausted its budget", "roundID", roundID, "attempt", attempt, "error", err)
		}),
	)
}

// budget returns the iteration ceiling of a zero-based attempt. It saturates
// at math.MaxUint64; an initial budget of zero stays unbounded.
func (s *service) budget(attempt uint) uint64 {
	initial := s.cfg.initialBudget
	if initial == 0 {
		return 0
	}

	if attempt >= 64 || initial > math.MaxUint64>>attempt {
		return math.MaxUint64
	}

	return initial << attempt
}
