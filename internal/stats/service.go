package stats

import (
	"context"
	"time"
)

const (
	recentWindow = 7 * 24 * time.Hour
	trendWindow  = 30 * 24 * time.Hour

	recentLimit     = 6
	topGroundsLimit = 5
)

type Service interface {
	Overview(ctx context.Context) (*Overview, error)
	RecentBookings(ctx context.Context) ([]RecentBooking, error)
	ChartData(ctx context.Context) ([]DayPoint, error)
	Analytics(ctx context.Context) (*Analytics, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Overview(ctx context.Context) (*Overview, error) {
	return s.repo.Overview(ctx)
}

func (s *service) RecentBookings(ctx context.Context) ([]RecentBooking, error) {
	return s.repo.RecentBookings(ctx, s.now().Add(-recentWindow), recentLimit)
}

// ChartData returns the last 30 days of trend points with gap days filled in,
// so the chart renders a continuous axis.
func (s *service) ChartData(ctx context.Context) ([]DayPoint, error) {
	since := s.now().Add(-trendWindow).Truncate(24 * time.Hour)
	points, err := s.repo.BookingTrend(ctx, since)
	if err != nil {
		return nil, err
	}
	return fillDays(points, since, s.now()), nil
}

func (s *service) Analytics(ctx context.Context) (*Analytics, error) {
	since := s.now().Add(-trendWindow).Truncate(24 * time.Hour)

	trend, err := s.repo.BookingTrend(ctx, since)
	if err != nil {
		return nil, err
	}
	top, err := s.repo.TopGrounds(ctx, since, topGroundsLimit)
	if err != nil {
		return nil, err
	}
	if top == nil {
		top = []GroundRevenue{}
	}

	newUsers, err := s.repo.NewUsers(ctx, since)
	if err != nil {
		return nil, err
	}

	return &Analytics{
		Trend:      fillDays(trend, since, s.now()),
		TopGrounds: top,
		NewUsers:   newUsers,
	}, nil
}

func fillDays(points []DayPoint, from, to time.Time) []DayPoint {
	byDay := make(map[string]DayPoint, len(points))
	for _, p := range points {
		byDay[p.Day.UTC().Format("2006-01-02")] = p
	}

	var filled []DayPoint
	for d := from.UTC().Truncate(24 * time.Hour); !d.After(to); d = d.Add(24 * time.Hour) {
		if p, ok := byDay[d.Format("2006-01-02")]; ok {
			filled = append(filled, p)
		} else {
			filled = append(filled, DayPoint{Day: d})
		}
	}
	return filled
}
