package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const quotaResetTimeout = 2 * time.Minute

type QuotaResetter interface {
	ResetAllQuotas(ctx context.Context) (int64, error)
}

// ResetDailyQuotas returns the cron body that restores every quota. The lazy
// per-request reset still applies if a run is missed.
func ResetDailyQuotas(resetter QuotaResetter, log *logrus.Entry) func() {
	return func() {
		log.Info("Running job: ResetDailyQuotas...")

		ctx, cancel := context.WithTimeout(context.Background(), quotaResetTimeout)
		defer cancel()

		affected, err := resetter.ResetAllQuotas(ctx)
		if err != nil {
			log.WithError(err).Error("Error resetting daily quotas")
			return
		}
		log.WithField("rows", affected).Info("Reset daily quotas")
	}
}

// ScheduleQuotaReset adds the reset job to c. An empty spec leaves the job
// unscheduled and returns 0.
func ScheduleQuotaReset(c *cron.Cron, spec string, resetter QuotaResetter, log *logrus.Entry) (cron.EntryID, error) {
	if spec == "" {
		log.Info("QUOTA_RESET_CRON not set, relying on per-request quota reset")
		return 0, nil
	}
	return c.AddFunc(spec, ResetDailyQuotas(resetter, log))
}
