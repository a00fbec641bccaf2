package services

import (
	"context"

	"github.com/dmitrijs2005/gostconsole/internal/client/models"
)

type StatsService interface {
	Dashboard(ctx context.Context) (*models.DashboardStats, error)
}

type statsService struct {
	doer Doer
}

func NewStatsService(d Doer) StatsService {
	return &statsService{doer: d}
}

func (s *statsService) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	var st models.DashboardStats
	if err := get(ctx, s.doer, "/dashboard/stats", nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}
