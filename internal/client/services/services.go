package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/gostconsole/internal/client/client"
)

// Doer runs one request through the pipeline.
type Doer interface {
	Do(ctx context.Context, r *client.Request, out any) error
}

func get(ctx context.Context, d Doer, path string, query url.Values, out any) error {
	return d.Do(ctx, &client.Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

func post(ctx context.Context, d Doer, path string, body, out any) error {
	return d.Do(ctx, &client.Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

func put(ctx context.Context, d Doer, path string, body, out any) error {
	return d.Do(ctx, &client.Request{Method: http.MethodPut, Path: path, Body: body}, out)
}

func del(ctx context.Context, d Doer, path string) error {
	return d.Do(ctx, &client.Request{Method: http.MethodDelete, Path: path}, nil)
}

func itemPath(collection string, id uint) string {
	return fmt.Sprintf("%s/%d", collection, id)
}
