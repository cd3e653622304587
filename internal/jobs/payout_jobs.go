package jobs

import (
	"context"

	"recruitment-tracker/internal/domain"
	"recruitment-tracker/internal/logger"
)

// SendPayoutDigest logs how many recruitment bonuses are still unpaid and
// which one has waited longest.
func (jr *JobRunner) SendPayoutDigest() {
	jr.runWithRecovery("SendPayoutDigest", func() {
		ctx, cancel := context.WithTimeout(context.Background(), jr.timeout)
		defer cancel()

		summary, err := jr.recruitments.Summary(ctx)
		if err != nil {
			logger.Error("Failed to build payout digest", "error", err)
			return
		}
		jr.logDigest(summary)
	})
}

func (jr *JobRunner) logDigest(summary *domain.PayoutSummary) {
	log := logger.WithJob("SendPayoutDigest")
	if summary.Pending == 0 {
		log.Info("No pending payouts", "total", summary.Total, "paid", summary.Paid)
		return
	}

	args := []any{"total", summary.Total, "pending", summary.Pending, "paid", summary.Paid}
	if oldest := summary.OldestPending; oldest != nil {
		args = append(args,
			"oldest_pending_id", oldest.ID,
			"oldest_pending_hstl_member", oldest.HSTLMember,
			"oldest_pending_recruited_member", oldest.RecruitedMember,
			"oldest_pending_days", int(jr.now().Sub(oldest.CreatedAt).Hours()/24),
		)
	}
	log.Warn("Payouts pending", args...)
}
