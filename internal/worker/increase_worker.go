package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/propstack/lease-rate-api/internal/service"
	"github.com/propstack/lease-rate-api/internal/service/queue"
	"github.com/propstack/lease-rate-api/pkg/logger"
)

// IncreaseWorker consumes standard increase messages and applies them through
// the rate change service, so automatic increases land in the ledger and on
// the lease-unit exactly like an approved request.
type IncreaseWorker struct {
	sqsService   *queue.SQSService
	rateChange   *service.RateChangeService
	logger       *logger.Logger
	workerCount  int
	pollInterval time.Duration
	maxMessages  int32
	waitTime     int32
	shutdownChan chan struct{}
	waitGroup    sync.WaitGroup
}

func NewIncreaseWorker(
	sqsService *queue.SQSService,
	rateChange *service.RateChangeService,
	logger *logger.Logger,
	workerCount int,
	pollInterval time.Duration,
) *IncreaseWorker {
	return &IncreaseWorker{
		sqsService:   sqsService,
		rateChange:   rateChange,
		logger:       logger,
		workerCount:  workerCount,
		pollInterval: pollInterval,
		maxMessages:  10, // Process up to 10 messages at a time
		waitTime:     20, // Long polling: wait up to 20 seconds for messages
		shutdownChan: make(chan struct{}),
	}
}

func (w *IncreaseWorker) Start() {
	w.logger.Info("Starting increase workers...")

	for i := 0; i < w.workerCount; i++ {
		w.waitGroup.Add(1)
		go w.runWorker(i)
	}
}

func (w *IncreaseWorker) Stop() {
	w.logger.Info("Stopping increase workers...")
	close(w.shutdownChan)
	w.waitGroup.Wait()
	w.logger.Info("All increase workers stopped")
}

func (w *IncreaseWorker) runWorker(workerID int) {
	defer w.waitGroup.Done()

	w.logger.Infof("Increase worker %d started", workerID)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.shutdownChan:
			w.logger.Infof("Increase worker %d shutting down", workerID)
			return
		case <-ticker.C:
			if err := w.processMessages(context.Background()); err != nil {
				w.logger.Errorf("Increase worker %d failed to process messages: %v", workerID, err)
			}
		}
	}
}

func (w *IncreaseWorker) processMessages(ctx context.Context) error {
	queueURL := w.sqsService.IncreaseQueueURL()

	messages, err := w.sqsService.ReceiveMessages(ctx, queueURL, w.maxMessages, w.waitTime)
	if err != nil {
		return fmt.Errorf("failed to receive messages: %w", err)
	}

	if len(messages) == 0 {
		w.logger.Debugf("No increase messages received from %s", queueURL)
		return nil
	}

	for _, msg := range messages {
		if err := w.processMessage(ctx, msg.Message); err != nil {
			w.logger.Errorf("Failed to process increase message: %v", err)
			continue
		}

		// Only delete the message if processing was successful
		if err := w.sqsService.DeleteMessage(ctx, queueURL, msg.ReceiptHandle); err != nil {
			w.logger.Errorf("Failed to delete message: %v", err)
		}
	}

	return nil
}

func (w *IncreaseWorker) processMessage(ctx context.Context, msg queue.Message) error {
	if msg.Type != queue.MessageTypeIncrease {
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}

	w.logger.Infof("Applying standard increase for lease unit %s (new rate: %s, effective: %s)",
		msg.LeaseUnitID, msg.NewRate.String(), msg.EffectiveDate.Format(time.RFC3339))

	_, err := w.rateChange.ApplyAutomaticIncrease(ctx, msg.LeaseUnitID, msg.NewRate, msg.EffectiveDate, msg.Reason)
	if err != nil {
		// An open manual request wins over the automatic increase. The message
		// is consumed; the scheduler will pick the unit up again next cycle.
		if errors.Is(err, service.ErrOpenRequestExists) {
			w.logger.Warnf("Skipping increase for lease unit %s: %v", msg.LeaseUnitID, err)
			return nil
		}
		return fmt.Errorf("failed to apply increase for lease unit %s: %w", msg.LeaseUnitID, err)
	}

	return nil
}
