package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/scanmed/internal/common"
	"github.com/dmitrijs2005/scanmed/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminService_ScanStats(t *testing.T) {
	ctx := context.Background()
	m := newTestManager()
	records := newRecordService(m)

	for _, c := range []struct {
		user string
		typ  models.ScanType
		conf float64
	}{
		{"u1", models.ScanEyes, 90},
		{"u1", models.ScanEyes, 80},
		{"u2", models.ScanSkin, 60},
		{"u3", models.ScanSkin, 40},
	} {
		_, err := records.CreateScan(ctx, c.user, models.ScanInput{ScanType: c.typ, Result: models.ResultHealthy, Confidence: ptr(c.conf)})
		require.NoError(t, err)
	}
	trashed, err := records.ListScans(ctx, "u3", models.TrashActive)
	require.NoError(t, err)
	require.NoError(t, records.SoftDelete(ctx, models.KindScan, trashed[0].ID, "u3"))

	s := NewAdminService(m, nopLogger())
	st, err := s.ScanStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), st.Users)
	assert.Equal(t, int64(3), st.Total)
	require.Len(t, st.ByType, len(models.AllScanTypes))
	assert.Equal(t, models.ScanTypeStats{ScanType: models.ScanEyes, Count: 2, AverageConfidence: 85}, st.ByType[0])

	m.scans = failingScans{}
	_, err = s.ScanStats(ctx)
	assert.ErrorIs(t, err, common.ErrorInternal)
}

func TestAdminService_Ping(t *testing.T) {
	m := newTestManager()
	s := NewAdminService(m, nopLogger())
	require.NoError(t, s.Ping(context.Background()))

	m.pingErr = errStore
	assert.ErrorIs(t, s.Ping(context.Background()), common.ErrorInternal)
}
