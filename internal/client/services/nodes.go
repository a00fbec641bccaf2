package services

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/gostconsole/internal/client/models"
)

// NodeService manages GOST nodes.
type NodeService interface {
	List(ctx context.Context, p models.ListParams) (*models.Page[models.Node], error)
	Get(ctx context.Context, id uint) (*models.Node, error)
	Create(ctx context.Context, req models.NodeRequest) (*models.Node, error)
	Update(ctx context.Context, id uint, req models.NodeRequest) (*models.Node, error)
	Delete(ctx context.Context, id uint) error
	// Config returns the GOST configuration generated for the node, as is.
	Config(ctx context.Context, id uint) (json.RawMessage, error)
}

type nodeService struct {
	doer Doer
}

func NewNodeService(d Doer) NodeService {
	return &nodeService{doer: d}
}

func (s *nodeService) List(ctx context.Context, p models.ListParams) (*models.Page[models.Node], error) {
	var page models.Page[models.Node]
	if err := get(ctx, s.doer, "/nodes", p.Query(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *nodeService) Get(ctx context.Context, id uint) (*models.Node, error) {
	var n models.Node
	if err := get(ctx, s.doer, itemPath("/nodes", id), nil, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *nodeService) Create(ctx context.Context, req models.NodeRequest) (*models.Node, error) {
	var n models.Node
	if err := post(ctx, s.doer, "/nodes", req, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *nodeService) Update(ctx context.Context, id uint, req models.NodeRequest) (*models.Node, error) {
	var n models.Node
	if err := put(ctx, s.doer, itemPath("/nodes", id), req, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *nodeService) Delete(ctx context.Context, id uint) error {
	return del(ctx, s.doer, itemPath("/nodes", id))
}

func (s *nodeService) Config(ctx context.Context, id uint) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := get(ctx, s.doer, itemPath("/nodes", id)+"/config", nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
