package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/petrodesk/station-api/internal/application/service"
	"github.com/petrodesk/station-api/internal/config"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ReconciliationJob runs the credit reconciliation sweep on a schedule so
// settlements left unreconciled during the day are repaired overnight.
type ReconciliationJob struct {
	reconciliationService *service.ReconciliationService
	cfg                   *config.ReconciliationConfig
	logger                *logrus.Logger
	cron                  *cron.Cron
}

// NewReconciliationJob creates a new reconciliation job
func NewReconciliationJob(
	reconciliationService *service.ReconciliationService,
	cfg *config.ReconciliationConfig,
	logger *logrus.Logger,
) *ReconciliationJob {
	return &ReconciliationJob{
		reconciliationService: reconciliationService,
		cfg:                   cfg,
		logger:                logger,
	}
}

// Start registers the cron entry and begins the scheduler. Returns without
// starting anything when the job is disabled.
func (j *ReconciliationJob) Start() error {
	if !j.cfg.Enabled || j.cfg.Schedule == "" {
		j.logger.Info("Reconciliation job disabled")
		return nil
	}

	j.cron = cron.New()
	if _, err := j.cron.AddFunc(j.cfg.Schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.WithField("schedule", j.cfg.Schedule).Info("Reconciliation job scheduled")
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish
func (j *ReconciliationJob) Stop() {
	if j.cron != nil {
		<-j.cron.Stop().Done()
	}
}

func (j *ReconciliationJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	started := time.Now()
	results, err := j.reconciliationService.ReconcileAll(ctx, uuid.Nil)
	if err != nil {
		j.logger.WithError(err).Error("Reconciliation sweep failed")
		return
	}

	repaired, failed := 0, 0
	for _, r := range results {
		if r.Success {
			repaired++
		} else {
			failed++
		}
	}

	j.logger.WithFields(logrus.Fields{
		"settlements": len(results),
		"repaired":    repaired,
		"failed":      failed,
		"duration":    time.Since(started).String(),
	}).Info("Reconciliation sweep completed")
}
