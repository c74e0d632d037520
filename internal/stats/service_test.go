package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	trend    []DayPoint
	top      []GroundRevenue
	newUsers int64
}

func (r *stubRepo) Overview(ctx context.Context) (*Overview, error) {
	return &Overview{TotalBookings: 10, UpcomingBookings: 4, TotalGrounds: 2, TotalUsers: 5, TotalRevenue: 12000}, nil
}

func (r *stubRepo) RecentBookings(ctx context.Context, since time.Time, limit int) ([]RecentBooking, error) {
	return nil, nil
}

func (r *stubRepo) BookingTrend(ctx context.Context, since time.Time) ([]DayPoint, error) {
	return r.trend, nil
}

func (r *stubRepo) TopGrounds(ctx context.Context, since time.Time, limit int) ([]GroundRevenue, error) {
	return r.top, nil
}

func (r *stubRepo) NewUsers(ctx context.Context, since time.Time) (int64, error) {
	return r.newUsers, nil
}

func fixedTime() time.Time {
	return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
}

func TestChartDataFillsGapDays(t *testing.T) {
	day := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	repo := &stubRepo{trend: []DayPoint{
		{Day: day, Bookings: 3, Revenue: 3000},
	}}

	svc := &service{repo: repo, now: fixedTime}

	points, err := svc.ChartData(context.Background())
	require.NoError(t, err)

	// 30 days back to today inclusive.
	assert.Len(t, points, 31)

	var matched bool
	for _, p := range points {
		if p.Day.Equal(day) {
			matched = true
			assert.Equal(t, int64(3), p.Bookings)
		} else {
			assert.Zero(t, p.Bookings)
			assert.Zero(t, p.Revenue)
		}
	}
	assert.True(t, matched)

	// Axis is strictly ascending, one point per day.
	for i := 1; i < len(points); i++ {
		assert.Equal(t, 24*time.Hour, points[i].Day.Sub(points[i-1].Day))
	}
}

func TestOverviewCarriesUpcomingCount(t *testing.T) {
	svc := &service{repo: &stubRepo{}, now: fixedTime}

	o, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), o.UpcomingBookings)
	assert.Equal(t, int64(5), o.TotalUsers)
}

func TestAnalytics(t *testing.T) {
	repo := &stubRepo{
		top: []GroundRevenue{
			{GroundID: "ground-1", GroundName: "City Turf Arena", Bookings: 4, Revenue: 8000},
		},
		newUsers: 7,
	}
	svc := &service{repo: repo, now: fixedTime}

	a, err := svc.Analytics(context.Background())
	require.NoError(t, err)
	assert.Len(t, a.TopGrounds, 1)
	assert.NotEmpty(t, a.Trend)
	assert.Equal(t, int64(7), a.NewUsers)
}

func TestAnalyticsEmptyLeaderboard(t *testing.T) {
	svc := &service{repo: &stubRepo{}, now: fixedTime}

	a, err := svc.Analytics(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, a.TopGrounds)
	assert.Empty(t, a.TopGrounds)
}
