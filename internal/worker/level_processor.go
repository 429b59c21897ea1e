package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/zervix/marketplace/internal/domain/model"
)

// MarketplaceFacade exposes the subset of application functionality required by the worker.
type MarketplaceFacade interface {
	SellersForRecompute(ctx context.Context, limit int) ([]model.User, error)
	RecomputeSellerLevel(ctx context.Context, sellerID int64) error
}

// SellerLevelProcessor periodically refreshes derived seller levels concurrently.
type SellerLevelProcessor struct {
	facade       MarketplaceFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.User
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewSellerLevelProcessor constructs the level refresh worker pool.
func NewSellerLevelProcessor(facade MarketplaceFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *SellerLevelProcessor {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &SellerLevelProcessor{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.User, batchSize*workers),
	}
}

// Start launches background processing.
func (p *SellerLevelProcessor) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *SellerLevelProcessor) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *SellerLevelProcessor) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *SellerLevelProcessor) fetchAndDispatch(ctx context.Context) {
	sellers, err := p.facade.SellersForRecompute(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("fetch sellers for recompute failed", slog.String("error", err.Error()))
		return
	}
	for _, seller := range sellers {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- seller:
		}
	}
}

func (p *SellerLevelProcessor) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case seller, ok := <-p.jobs:
			if !ok {
				return
			}
			p.handleSeller(ctx, seller)
		}
	}
}

func (p *SellerLevelProcessor) handleSeller(ctx context.Context, seller model.User) {
	if err := p.facade.RecomputeSellerLevel(ctx, seller.ID); err != nil {
		p.logger.Error("seller level recompute failed",
			slog.Int64("seller_id", seller.ID),
			slog.String("error", err.Error()),
		)
	}
}
