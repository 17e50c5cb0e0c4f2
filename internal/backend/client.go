// Package backend es el cliente del API REST de PetCare.
// Todas las lecturas pasan por el normalizador; las escrituras usan los
// nombres de campo del backend.
package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"petcare-companion/internal/normalize"
	"petcare-companion/internal/platform/httpclient"
	"petcare-companion/internal/platform/logger"
)

// BasePath es el prefijo de todas las rutas del backend.
const BasePath = "/api/petcare"

var ErrNotConfigured = errors.New("backend client not configured")

type Client struct {
	http *httpclient.Client
	norm *normalize.Normalizer
	log  logger.Logger
}

// New recibe un httpclient con BaseURL ya apuntando a .../api/petcare.
func New(hc *httpclient.Client, norm *normalize.Normalizer, log logger.Logger) *Client {
	if norm == nil {
		norm = normalize.New(normalize.ImageResolver{})
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{http: hc, norm: norm, log: log}
}

// APIBaseURL agrega BasePath al host del backend si hace falta.
func APIBaseURL(host string) string {
	host = strings.TrimRight(strings.TrimSpace(host), "/")
	if host == "" || strings.HasSuffix(host, BasePath) {
		return host
	}
	return host + BasePath
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && strings.TrimSpace(c.http.BaseURL) != ""
}

// Normalizer expone el normalizador (las páginas lo usan para imágenes).
func (c *Client) Normalizer() *normalize.Normalizer { return c.norm }

func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	if !c.IsConfigured() {
		return ErrNotConfigured
	}
	err := c.http.DoJSON(ctx, method, path, nil, in, out)
	if err != nil {
		fields := map[string]any{"op": op, "method": method, "path": path, "error": err}
		var he *httpclient.HTTPError
		if errors.As(err, &he) {
			fields["status"] = he.StatusCode
		}
		c.log.Warn("backend request failed", fields)
	}
	return err
}

// list prueba cada path en orden; el primero que responde gana.
func list[T any](ctx context.Context, c *Client, op string, fn func(normalize.Raw) T, paths ...string) ([]T, error) {
	var lastErr error
	for _, p := range paths {
		var raw any
		if err := c.do(ctx, op, http.MethodGet, p, nil, &raw); err != nil {
			lastErr = err
			continue
		}
		return normalize.List(raw, fn), nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("%s: no path", op)
	}
	return nil, lastErr
}

func get[T any](ctx context.Context, c *Client, op, path string, id int64, fn func(normalize.Raw) T) (T, error) {
	var raw any
	if err := c.do(ctx, op, http.MethodGet, withID(path, id), nil, &raw); err != nil {
		var zero T
		return zero, err
	}
	return fn(normalize.UnwrapOne(raw)), nil
}

func create[T any](ctx context.Context, c *Client, op, path string, body any, fn func(normalize.Raw) T) (T, error) {
	var raw any
	if err := c.do(ctx, op, http.MethodPost, path, body, &raw); err != nil {
		var zero T
		return zero, err
	}
	return fn(normalize.UnwrapOne(raw)), nil
}

func update[T any](ctx context.Context, c *Client, op, path string, id int64, body any, fn func(normalize.Raw) T) (T, error) {
	var raw any
	if err := c.do(ctx, op, http.MethodPut, withID(path, id), body, &raw); err != nil {
		var zero T
		return zero, err
	}
	return fn(normalize.UnwrapOne(raw)), nil
}

func (c *Client) remove(ctx context.Context, op, path string, id int64) error {
	return c.do(ctx, op, http.MethodDelete, withID(path, id), nil, nil)
}

func withID(path string, id int64) string {
	return path + "/" + strconv.FormatInt(id, 10)
}
