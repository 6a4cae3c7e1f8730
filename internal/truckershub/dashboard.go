package truckershub

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Dashboard loads the five driver hub panels concurrently. Reads never fail,
// so the group only joins them.
func (c *Client) Dashboard(ctx context.Context) *Dashboard {
	var d Dashboard
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		d.Stats = c.VTC(ctx)
		return nil
	})
	g.Go(func() error {
		d.AllTime = c.Leaderboard(ctx, "alltime")
		return nil
	})
	g.Go(func() error {
		d.Monthly = c.Leaderboard(ctx, "monthly")
		return nil
	})
	g.Go(func() error {
		d.Jobs = c.Jobs(ctx, nil)
		return nil
	})
	g.Go(func() error {
		d.User = c.User(ctx)
		return nil
	})

	_ = g.Wait()
	return &d
}
