package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"kyc-platform.backend/internal/domain/entities"
	"kyc-platform.backend/pkg/logger"
)

type settingsReader interface {
	Get(ctx context.Context) (*entities.PlatformSettings, error)
}

type kycCounter interface {
	CountInvalid(ctx context.Context, version uint64, cutoff time.Time) (int64, error)
}

type projectCounter interface {
	CountCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type expiryGauges interface {
	SetExpiredKycMembers(n int64)
	SetExpiredProjects(n int64)
}

// ExpiryReportJob periodically counts KYC approvals and projects that no longer pass validation
type ExpiryReportJob struct {
	settings settingsReader
	kyc      kycCounter
	projects projectCounter
	gauges   expiryGauges
	now      func() time.Time
	interval time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

func NewExpiryReportJob(settings settingsReader, kyc kycCounter, projects projectCounter, gauges expiryGauges, interval time.Duration) *ExpiryReportJob {
	if interval <= 0 {
		interval = time.Minute
	}
	return &ExpiryReportJob{
		settings: settings,
		kyc:      kyc,
		projects: projects,
		gauges:   gauges,
		now:      time.Now,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (j *ExpiryReportJob) Start(ctx context.Context) {
	logger.Info(ctx, "Starting expiry report job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.report(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Expiry report job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "Expiry report job stopped")
			return
		case <-ticker.C:
			j.report(ctx)
		}
	}
}

func (j *ExpiryReportJob) Stop() {
	j.stopOnce.Do(func() { close(j.stop) })
}

func (j *ExpiryReportJob) report(ctx context.Context) {
	settings, err := j.settings.Get(ctx)
	if err != nil {
		logger.Warn(ctx, "Expiry report skipped: settings unavailable", zap.Error(err))
		return
	}
	now := j.now()

	invalidKyc, err := j.kyc.CountInvalid(ctx, settings.Kyc.Version, now.Add(-settings.Kyc.RenewExpireTime))
	if err != nil {
		logger.Error(ctx, "Error counting invalid KYC members", zap.Error(err))
	} else {
		j.gauges.SetExpiredKycMembers(invalidKyc)
	}

	expiredProjects, err := j.projects.CountCreatedBefore(ctx, now.Add(-settings.Project.Lifetime()))
	if err != nil {
		logger.Error(ctx, "Error counting expired projects", zap.Error(err))
	} else {
		j.gauges.SetExpiredProjects(expiredProjects)
	}

	logger.Debug(ctx, "Expiry report refreshed",
		zap.Int64("invalid_kyc_members", invalidKyc),
		zap.Int64("expired_projects", expiredProjects),
	)
}
