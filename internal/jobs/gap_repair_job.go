package jobs

import (
	"context"
	"log/slog"

	"sortable/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// Repacker is satisfied by commands.RepackItemsCommandHandler.
type Repacker interface {
	Handle(ctx context.Context, cmd commands.RepackItemsCommand) (int, error)
}

// GapRepairJob periodically repacks every category so gaps and ties left by
// manual edits or failed post-delete repacks do not linger.
type GapRepairJob struct {
	handler  Repacker
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewGapRepairJob creates the job. An empty schedule disables it.
func NewGapRepairJob(handler Repacker, schedule string, logger *slog.Logger) *GapRepairJob {
	return &GapRepairJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "gap_repair_job"),
	}
}

// Start registers the sweep on the configured schedule.
func (j *GapRepairJob) Start() error {
	if j.schedule == "" {
		j.logger.InfoContext(context.Background(), "Gap repair job disabled (no schedule)")
		return nil
	}

	_, err := j.cron.AddFunc(j.schedule, func() {
		_, _ = j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Gap repair job started", "schedule", j.schedule)
	return nil
}

// RunOnce repacks all categories and returns the number of positions rewritten.
func (j *GapRepairJob) RunOnce(ctx context.Context) (int, error) {
	cmd, err := commands.NewRepackItemsCommand()
	if err != nil {
		return 0, err
	}

	written, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Gap repair job failed", "error", err)
		return 0, err
	}
	if written > 0 {
		j.logger.InfoContext(ctx, "Gap repair job closed gaps", "written", written)
	}
	return written, nil
}

// Stop stops the gap repair job and waits for a running sweep to finish.
func (j *GapRepairJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Gap repair job stopped")
}
