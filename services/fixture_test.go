package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/anjiri1684/interview_prepper/database/databasetest"
	"github.com/anjiri1684/interview_prepper/generator/generatortest"
	"github.com/anjiri1684/interview_prepper/logger"
	"github.com/anjiri1684/interview_prepper/metrics"
	"github.com/anjiri1684/interview_prepper/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testStart = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

type fixture struct {
	db         *gorm.DB
	clock      *databasetest.Clock
	quotas     *QuotaService
	challenges *ChallengeService
	answers    *AnswerService
	gen        *generatortest.Fake
	cache      *mapCache
	metrics    *metrics.Metrics
	prep       *PrepService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clock := databasetest.NewClock(testStart)
	db := databasetest.New(t, clock)
	log := logger.Discard()

	f := &fixture{
		db:      db,
		clock:   clock,
		gen:     &generatortest.Fake{},
		cache:   newMapCache(),
		metrics: metrics.New(prometheus.NewRegistry()),
	}
	f.quotas = NewQuotaService(db, QuotaOptions{DailyQuota: models.DefaultDailyQuota, Location: time.UTC, Now: clock.Now}, log)
	f.challenges = NewChallengeService(db, log)
	f.answers = NewAnswerService(db, f.challenges, log)
	f.prep = NewPrepService(f.quotas, f.challenges, f.answers, f.gen, f.cache, f.metrics, log)
	return f
}

func (f *fixture) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

var errDiskIO = errors.New("disk I/O error")

// failUpdates makes every UPDATE on table fail before it reaches the
// database.
func failUpdates(t *testing.T, db *gorm.DB, table string) {
	t.Helper()
	err := db.Callback().Update().Before("gorm:update").Register("test:fail_update_"+table, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			tx.AddError(errDiskIO)
		}
	})
	require.NoError(t, err)
}

// failAfterInsert lets the INSERT on table run and then fails the statement,
// so an enclosing transaction has to roll the rows back.
func failAfterInsert(t *testing.T, db *gorm.DB, table string) {
	t.Helper()
	err := db.Callback().Create().After("gorm:create").Register("test:fail_create_"+table, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			tx.AddError(errDiskIO)
		}
	})
	require.NoError(t, err)
}

// mapCache is an in-process HistoryCache that records invalidations.
type mapCache struct {
	mu            sync.Mutex
	entries       map[string][]byte
	invalidations map[string]int
}

func newMapCache() *mapCache {
	return &mapCache{entries: map[string][]byte{}, invalidations: map[string]int{}}
}

func (c *mapCache) Get(_ context.Context, userID string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.entries[userID]
	return p, ok
}

func (c *mapCache) Set(_ context.Context, userID string, payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[userID] = payload
}

func (c *mapCache) Invalidate(_ context.Context, userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, userID)
	c.invalidations[userID]++
}
