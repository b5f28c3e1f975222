package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/anjiri1684/interview_prepper/logger"
	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resetterFunc func(ctx context.Context) (int64, error)

func (f resetterFunc) ResetAllQuotas(ctx context.Context) (int64, error) {
	return f(ctx)
}

func TestResetDailyQuotasCallsResetter(t *testing.T) {
	calls := 0
	job := ResetDailyQuotas(resetterFunc(func(ctx context.Context) (int64, error) {
		calls++
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return 4, nil
	}), logger.Discard())

	job()
	job()

	assert.Equal(t, 2, calls)
}

func TestResetDailyQuotasSurvivesFailure(t *testing.T) {
	job := ResetDailyQuotas(resetterFunc(func(context.Context) (int64, error) {
		return 0, errors.New("database is down")
	}), logger.Discard())

	assert.NotPanics(t, job)
}

func TestScheduleQuotaReset(t *testing.T) {
	noop := resetterFunc(func(context.Context) (int64, error) { return 0, nil })

	tests := []struct {
		name        string
		spec        string
		wantEntries int
		wantErr     bool
	}{
		{name: "midnight", spec: "0 0 * * *", wantEntries: 1},
		{name: "descriptor", spec: "@daily", wantEntries: 1},
		{name: "disabled", spec: "", wantEntries: 0},
		{name: "invalid", spec: "every midnight", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cron.New()

			_, err := ScheduleQuotaReset(c, tt.spec, noop, logger.Discard())

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, c.Entries(), tt.wantEntries)
		})
	}
}
