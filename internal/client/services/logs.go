package services

import (
	"context"

	"github.com/dmitrijs2005/gostconsole/internal/client/models"
)

type LogService interface {
	List(ctx context.Context, p models.LogListParams) (*models.Page[models.OperationLog], error)
}

type logService struct {
	doer Doer
}

func NewLogService(d Doer) LogService {
	return &logService{doer: d}
}

// List pages through the operation log; page and page size default to 1
// and 20.
func (s *logService) List(ctx context.Context, p models.LogListParams) (*models.Page[models.OperationLog], error) {
	var page models.Page[models.OperationLog]
	if err := get(ctx, s.doer, "/logs", p.Query(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}
