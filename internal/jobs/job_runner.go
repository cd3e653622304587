package jobs

import (
	"fmt"
	"sort"
	"time"

	"recruitment-tracker/internal/config"
	"recruitment-tracker/internal/logger"
	"recruitment-tracker/internal/service"
)

const JobPayoutDigest = "payout-digest"

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	recruitments service.RecruitmentService
	config       *config.Config
	timeout      time.Duration
	now          func() time.Time
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(recruitments service.RecruitmentService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		recruitments: recruitments,
		config:       cfg,
		timeout:      time.Minute,
		now:          time.Now,
	}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// Jobs maps the names accepted by RunJob to their functions.
func (jr *JobRunner) Jobs() map[string]func() {
	return map[string]func(){
		JobPayoutDigest: jr.SendPayoutDigest,
	}
}

// JobNames returns the RunJob names in sorted order.
func (jr *JobRunner) JobNames() []string {
	names := make([]string, 0, len(jr.Jobs()))
	for name := range jr.Jobs() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RunJob runs one job by name (for manual execution)
func (jr *JobRunner) RunJob(name string) error {
	job, ok := jr.Jobs()[name]
	if !ok {
		return fmt.Errorf("unknown job %q", name)
	}
	job()
	return nil
}
