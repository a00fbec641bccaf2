package services

import (
	"context"

	"github.com/dmitrijs2005/gostconsole/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gostconsole/internal/common"
	"github.com/dmitrijs2005/gostconsole/internal/logging"
)

// Branding caches the panel's public look (title, logo, copyright) in the
// metadata store so the console can show it before the panel answers.
type Branding struct {
	system SystemService
	store  metadata.Repository
	logger logging.Logger
}

func NewBranding(system SystemService, store metadata.Repository, logger logging.Logger) *Branding {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Branding{system: system, store: store, logger: logger}
}

// Sync fetches the public config and mirrors it. An empty title or
// copyright keeps the cached value; an empty logo removes it. Errors are
// logged only.
func (b *Branding) Sync(ctx context.Context) {
	cfg, err := b.system.PublicConfig(ctx)
	if err != nil {
		b.logger.Warn(ctx, "failed to fetch public config", "error", err)
		return
	}

	err = b.store.Batch(ctx, func(ctx context.Context, tx metadata.Repository) error {
		if cfg.SiteTitle != "" {
			if err := tx.Set(ctx, common.SiteTitleKey, []byte(cfg.SiteTitle)); err != nil {
				return err
			}
		}
		if cfg.LogoURL != "" {
			if err := tx.Set(ctx, common.LogoURLKey, []byte(cfg.LogoURL)); err != nil {
				return err
			}
		} else if err := tx.Delete(ctx, common.LogoURLKey); err != nil {
			return err
		}
		if cfg.Copyright != "" {
			return tx.Set(ctx, common.CopyrightKey, []byte(cfg.Copyright))
		}
		return nil
	})
	if err != nil {
		b.logger.Warn(ctx, "failed to cache branding", "error", err)
	}
}

// Title is the cached site title, "Gost Panel" when none is cached.
func (b *Branding) Title(ctx context.Context) string {
	if v := b.value(ctx, common.SiteTitleKey); v != "" {
		return v
	}
	return common.DefaultSiteTitle
}

func (b *Branding) LogoURL(ctx context.Context) string {
	return b.value(ctx, common.LogoURLKey)
}

func (b *Branding) Copyright(ctx context.Context) string {
	return b.value(ctx, common.CopyrightKey)
}

func (b *Branding) value(ctx context.Context, key string) string {
	v, err := b.store.Get(ctx, key)
	if err != nil {
		b.logger.Warn(ctx, "failed to read branding", "key", key, "error", err)
		return ""
	}
	return string(v)
}
