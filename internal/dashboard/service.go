package dashboard

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Service assembles the dashboard summary.
type Service struct {
	repo Repository
}

// NewService constructs a dashboard service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Summary counts products, customers and transactions and sums the revenue
// of now's calendar day. The reads run concurrently.
func (s *Service) Summary(ctx context.Context, now time.Time) (Summary, error) {
	summary := Summary{Date: now}
	g, ctx := errgroup.WithContext(ctx)

	counts := []struct {
		table Table
		dst   *int64
	}{
		{TableProducts, &summary.Products},
		{TableCustomers, &summary.Customers},
		{TableTransactions, &summary.Transactions},
	}
	for _, c := range counts {
		c := c
		g.Go(func() error {
			n, err := s.repo.Count(ctx, c.table)
			if err != nil {
				return err
			}
			*c.dst = n
			return nil
		})
	}

	g.Go(func() error {
		from, to := dayBounds(now)
		revenue, err := s.repo.Revenue(ctx, from, to)
		if err != nil {
			return err
		}
		summary.RevenueToday = revenue
		return nil
	})

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	return summary, nil
}
