package services

import (
	"context"

	"github.com/dmitrijs2005/gostconsole/internal/client/models"
)

// TunnelService manages tunnels between an entry and an exit node.
type TunnelService interface {
	List(ctx context.Context, p models.ListParams) (*models.Page[models.Tunnel], error)
	Get(ctx context.Context, id uint) (*models.Tunnel, error)
	Create(ctx context.Context, req models.TunnelRequest) (*models.Tunnel, error)
	Update(ctx context.Context, id uint, req models.TunnelRequest) (*models.Tunnel, error)
	Delete(ctx context.Context, id uint) error
	Start(ctx context.Context, id uint) error
	Stop(ctx context.Context, id uint) error
}

type tunnelService struct {
	doer Doer
}

func NewTunnelService(d Doer) TunnelService {
	return &tunnelService{doer: d}
}

func (s *tunnelService) List(ctx context.Context, p models.ListParams) (*models.Page[models.Tunnel], error) {
	var page models.Page[models.Tunnel]
	if err := get(ctx, s.doer, "/tunnels", p.Query(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *tunnelService) Get(ctx context.Context, id uint) (*models.Tunnel, error) {
	var t models.Tunnel
	if err := get(ctx, s.doer, itemPath("/tunnels", id), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *tunnelService) Create(ctx context.Context, req models.TunnelRequest) (*models.Tunnel, error) {
	var t models.Tunnel
	if err := post(ctx, s.doer, "/tunnels", req, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *tunnelService) Update(ctx context.Context, id uint, req models.TunnelRequest) (*models.Tunnel, error) {
	var t models.Tunnel
	if err := put(ctx, s.doer, itemPath("/tunnels", id), req, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *tunnelService) Delete(ctx context.Context, id uint) error {
	return del(ctx, s.doer, itemPath("/tunnels", id))
}

func (s *tunnelService) Start(ctx context.Context, id uint) error {
	return post(ctx, s.doer, itemPath("/tunnels", id)+"/start", nil, nil)
}

func (s *tunnelService) Stop(ctx context.Context, id uint) error {
	return post(ctx, s.doer, itemPath("/tunnels", id)+"/stop", nil, nil)
}
