package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/anjiri1684/interview_prepper/models"
	"github.com/anjiri1684/interview_prepper/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuotaOptions struct {
	DailyQuota int
	Location   *time.Location
	Now        func() time.Time
}

// QuotaService owns the per-user, per-challenge-type daily allowance.
//
// Consume decrements in SQL, so concurrent consumes each take one unit and
// a reset committed mid-request is kept. The remaining > 0 check is not
// locked, and two requests for the last unit can both pass it.
type QuotaService struct {
	db    *gorm.DB
	daily int
	loc   *time.Location
	now   func() time.Time
	log   *logrus.Entry
}

func NewQuotaService(db *gorm.DB, opts QuotaOptions, log *logrus.Entry) *QuotaService {
	if opts.DailyQuota <= 0 {
		opts.DailyQuota = models.DefaultDailyQuota
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &QuotaService{db: db, daily: opts.DailyQuota, loc: opts.Location, now: opts.Now, log: log}
}

func (s *QuotaService) DailyQuota() int {
	return s.daily
}

func (s *QuotaService) StartOfToday() time.Time {
	return utils.StartOfDay(s.now(), s.loc)
}

func validateQuotaKey(userID, challengeType string) error {
	if strings.TrimSpace(userID) == "" {
		return invalidf("user_id cannot be empty")
	}
	if !models.IsValidChallengeType(challengeType) {
		return invalidf("invalid challenge_type '%s', must be 'interview' or 'scenario'", challengeType)
	}
	return nil
}

// Get returns the stored row without creating one.
func (s *QuotaService) Get(ctx context.Context, userID, challengeType string) (*models.ChallengeQuota, error) {
	if err := validateQuotaKey(userID, challengeType); err != nil {
		return nil, err
	}

	var quota models.ChallengeQuota
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND challenge_type = ?", userID, challengeType).
		First(&quota).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("no quota found for challenge type '%s'", challengeType)
		}
		return nil, storageError("getting challenge quota", err)
	}
	return &quota, nil
}

// GetOrCreate inserts a full allowance for the pair unless a row already
// exists, then reads the row back. The unique index on
// (user_id, challenge_type) makes concurrent callers converge on one row.
func (s *QuotaService) GetOrCreate(ctx context.Context, userID, challengeType string) (*models.ChallengeQuota, error) {
	if err := validateQuotaKey(userID, challengeType); err != nil {
		return nil, err
	}

	quota := models.ChallengeQuota{
		UserID:         userID,
		ChallengeType:  challengeType,
		QuotaRemaining: s.daily,
		LastResetDate:  s.StartOfToday(),
	}
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "challenge_type"}},
			DoNothing: true,
		}).
		Create(&quota)
	if result.Error != nil {
		return nil, storageError("creating challenge quota", result.Error)
	}
	if result.RowsAffected > 0 {
		s.log.WithFields(logrus.Fields{"user_id": userID, "challenge_type": challengeType}).
			Info("Created challenge quota")
	}

	return s.Get(ctx, userID, challengeType)
}

// ResetIfNeeded restores the full allowance the first time the row is seen
// on a new day. Calling it again on the same day is a no-op.
func (s *QuotaService) ResetIfNeeded(ctx context.Context, quota *models.ChallengeQuota) (*models.ChallengeQuota, error) {
	if quota == nil {
		return nil, invalidf("quota cannot be nil")
	}

	today := s.StartOfToday()
	if !quota.LastResetDate.Before(today) {
		return quota, nil
	}

	err := s.db.WithContext(ctx).Model(quota).Updates(map[string]interface{}{
		"quota_remaining": s.daily,
		"last_reset_date": today,
	}).Error
	if err != nil {
		return nil, storageError("resetting quota", err)
	}

	quota.QuotaRemaining = s.daily
	quota.LastResetDate = today
	s.log.WithFields(logrus.Fields{"user_id": quota.UserID, "challenge_type": quota.ChallengeType}).
		Info("Midnight quota reset")
	return quota, nil
}

// Ensure is GetOrCreate followed by ResetIfNeeded.
func (s *QuotaService) Ensure(ctx context.Context, userID, challengeType string) (*models.ChallengeQuota, error) {
	quota, err := s.GetOrCreate(ctx, userID, challengeType)
	if err != nil {
		return nil, err
	}
	return s.ResetIfNeeded(ctx, quota)
}

// Consume takes one unit from the stored allowance and returns the row as
// it is after the decrement. The caller checks QuotaRemaining first; the
// guard here only covers the in-memory value.
func (s *QuotaService) Consume(ctx context.Context, quota *models.ChallengeQuota) (*models.ChallengeQuota, error) {
	if quota == nil {
		return nil, invalidf("quota cannot be nil")
	}
	if quota.QuotaRemaining <= 0 {
		return nil, ErrQuotaExhausted
	}

	result := s.db.WithContext(ctx).
		Model(&models.ChallengeQuota{}).
		Where("id = ?", quota.ID).
		Update("quota_remaining", gorm.Expr("quota_remaining - ?", 1))
	if result.Error != nil {
		return nil, storageError("decrementing quota", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, notFoundf("no quota found for challenge type '%s'", quota.ChallengeType)
	}

	var stored models.ChallengeQuota
	if err := s.db.WithContext(ctx).First(&stored, "id = ?", quota.ID).Error; err != nil {
		return nil, storageError("reading decremented quota", err)
	}
	*quota = stored
	return quota, nil
}

// ForceResetAll writes a full allowance to every row in one transaction.
func (s *QuotaService) ForceResetAll(ctx context.Context) (int64, error) {
	today := s.StartOfToday()

	var affected int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ChallengeQuota{}).
			Where("1 = 1").
			Updates(map[string]interface{}{
				"quota_remaining": s.daily,
				"last_reset_date": today,
			})
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return 0, storageError("force resetting all quotas", err)
	}

	s.log.WithField("rows", affected).Info("Force reset all quotas")
	return affected, nil
}
