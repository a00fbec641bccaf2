package services

import (
	"context"

	"github.com/dmitrijs2005/gostconsole/internal/client/models"
)

// SystemService covers panel-wide settings, test mail and backups.
type SystemService interface {
	Config(ctx context.Context) (*models.SystemConfig, error)
	// PublicConfig is served to anonymous callers too.
	PublicConfig(ctx context.Context) (*models.PublicSystemConfig, error)
	UpdateConfig(ctx context.Context, cfg models.SystemConfig) error
	SendTestEmail(ctx context.Context, cfg models.EmailConfig) error
	Backup(ctx context.Context) error
}

type systemService struct {
	doer Doer
}

func NewSystemService(d Doer) SystemService {
	return &systemService{doer: d}
}

func (s *systemService) Config(ctx context.Context) (*models.SystemConfig, error) {
	var cfg models.SystemConfig
	if err := get(ctx, s.doer, "/system/config", nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s *systemService) PublicConfig(ctx context.Context) (*models.PublicSystemConfig, error) {
	var cfg models.PublicSystemConfig
	if err := get(ctx, s.doer, "/system/public-config", nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s *systemService) UpdateConfig(ctx context.Context, cfg models.SystemConfig) error {
	return put(ctx, s.doer, "/system/config", cfg, nil)
}

func (s *systemService) SendTestEmail(ctx context.Context, cfg models.EmailConfig) error {
	return post(ctx, s.doer, "/system/email/test", cfg, nil)
}

func (s *systemService) Backup(ctx context.Context) error {
	return post(ctx, s.doer, "/system/backup", nil, nil)
}
