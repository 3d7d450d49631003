package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/propstack/lease-rate-api/internal/service"
	"github.com/propstack/lease-rate-api/internal/service/queue"
	"github.com/propstack/lease-rate-api/pkg/logger"
)

// IncreaseScheduler periodically scans leases with the standard increase
// policy enabled and enqueues one message per lease-unit whose next increase
// has fallen due. Applying the increase is the worker's job; enqueueing the
// same unit twice is safe because the worker re-checks due state through the
// service's conflict rules.
type IncreaseScheduler struct {
	sqsService   *queue.SQSService
	rateChange   *service.RateChangeService
	logger       *logger.Logger
	scanInterval time.Duration
	shutdownChan chan struct{}
	doneChan     chan struct{}
}

func NewIncreaseScheduler(
	sqsService *queue.SQSService,
	rateChange *service.RateChangeService,
	logger *logger.Logger,
	scanInterval time.Duration,
) *IncreaseScheduler {
	return &IncreaseScheduler{
		sqsService:   sqsService,
		rateChange:   rateChange,
		logger:       logger,
		scanInterval: scanInterval,
		shutdownChan: make(chan struct{}),
		doneChan:     make(chan struct{}),
	}
}

func (s *IncreaseScheduler) Start() {
	s.logger.Info("Starting increase scheduler...")
	go s.run()
}

func (s *IncreaseScheduler) Stop() {
	s.logger.Info("Stopping increase scheduler...")
	close(s.shutdownChan)
	<-s.doneChan
	s.logger.Info("Increase scheduler stopped")
}

func (s *IncreaseScheduler) run() {
	defer close(s.doneChan)

	ticker := time.NewTicker(s.scanInterval)
	defer ticker.Stop()

	// Scan once at startup so a restart never delays due increases by a full
	// interval.
	if err := s.scan(context.Background()); err != nil {
		s.logger.Errorf("Increase scan failed: %v", err)
	}

	for {
		select {
		case <-s.shutdownChan:
			return
		case <-ticker.C:
			if err := s.scan(context.Background()); err != nil {
				s.logger.Errorf("Increase scan failed: %v", err)
			}
		}
	}
}

func (s *IncreaseScheduler) scan(ctx context.Context) error {
	due, err := s.rateChange.ListDueIncreases(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("failed to list due increases: %w", err)
	}

	if len(due) == 0 {
		s.logger.Info("No standard increases due")
		return nil
	}

	s.logger.Infof("Enqueueing %d due standard increases", len(due))

	for _, d := range due {
		if err := s.sqsService.SendIncreaseMessage(ctx, d.LeaseUnitID, d.NewRate, d.EffectiveDate, d.Reason); err != nil {
			s.logger.Errorf("Failed to enqueue increase for lease unit %s: %v", d.LeaseUnitID, err)
			continue
		}
	}

	return nil
}
