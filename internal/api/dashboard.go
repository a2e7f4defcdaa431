package api

import (
	"context"
	"net/url"
	"strconv"
)

// DashboardService maps the read-only aggregation endpoints.
type DashboardService struct {
	c *Client
}

func NewDashboardService(c *Client) *DashboardService { return &DashboardService{c: c} }

func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := s.c.getJSON(ctx, "/api/dashboard/stats", nil, &stats); err != nil {
		s.c.log.Error().Err(err).Msg("fetch dashboard stats failed")
		return nil, err
	}
	return &stats, nil
}

func (s *DashboardService) RecentTransactions(ctx context.Context, limit int) ([]Transaction, error) {
	var transactions []Transaction
	if err := s.c.getJSON(ctx, "/api/dashboard/recent-transactions", limitQuery(limit), &transactions); err != nil {
		s.c.log.Error().Err(err).Msg("fetch recent transactions failed")
		return nil, err
	}
	return transactions, nil
}

func (s *DashboardService) PopularBooks(ctx context.Context, limit int) ([]PopularBook, error) {
	var books []PopularBook
	if err := s.c.getJSON(ctx, "/api/dashboard/popular-books", limitQuery(limit), &books); err != nil {
		s.c.log.Error().Err(err).Msg("fetch popular books failed")
		return nil, err
	}
	return books, nil
}

// OverdueBooks swallows failures into an empty list so the dashboard can
// render its "no overdue books" state.
func (s *DashboardService) OverdueBooks(ctx context.Context, limit int) []OverdueBook {
	var books []OverdueBook
	if err := s.c.getJSON(ctx, "/api/dashboard/overdue-books", limitQuery(limit), &books); err != nil {
		s.c.log.Warn().Err(err).Msg("fetch overdue books failed")
		return []OverdueBook{}
	}
	return books
}

func limitQuery(limit int) url.Values {
	return url.Values{"limit": {strconv.Itoa(limit)}}
}
