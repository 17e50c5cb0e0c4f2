package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	DefaultTimeout = 10 * time.Second

	RequestIDHeader = "X-Request-ID"
)

// Client es el cliente JSON del backend REST.
type Client struct {
	HTTP *http.Client
	// BaseURL vacío obliga a pasar URLs absolutas.
	BaseURL string

	// Limiter opcional: cada request espera un token antes de salir.
	Limiter *rate.Limiter

	// Headers se evalúa en cada request (p.ej. Authorization desde la sesión).
	Headers func(ctx context.Context) map[string]string
}

// New usa DefaultTimeout si timeout <= 0.
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{HTTP: &http.Client{Timeout: timeout}}
}

func NewWithBaseURL(baseURL string, timeout time.Duration) (*Client, error) {
	c := New(timeout)
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return c, nil
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	c.BaseURL = strings.TrimRight(baseURL, "/")
	return c, nil
}

// WithRateLimit limita a rps requests por segundo con ráfaga burst. rps <= 0 desactiva.
func (c *Client) WithRateLimit(rps float64, burst int) *Client {
	if rps <= 0 {
		c.Limiter = nil
		return c
	}
	if burst <= 0 {
		burst = 1
	}
	c.Limiter = rate.NewLimiter(rate.Limit(rps), burst)
	return c
}

// HTTPError es una respuesta fuera de 2xx; Body va recortado.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// Message extrae un texto legible del body: string JSON, campo message,
// campo error o texto plano corto. Si no hay nada usable => "HTTP <status>".
func (e *HTTPError) Message() string {
	body := strings.TrimSpace(e.Body)
	if body != "" {
		var v any
		if err := json.Unmarshal([]byte(body), &v); err == nil {
			switch x := v.(type) {
			case string:
				if s := strings.TrimSpace(x); s != "" {
					return s
				}
			case map[string]any:
				for _, k := range []string{"message", "error"} {
					if s, ok := x[k].(string); ok && strings.TrimSpace(s) != "" {
						return strings.TrimSpace(s)
					}
				}
			}
		} else if !strings.HasPrefix(body, "<") && len(body) <= 200 {
			return body
		}
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// HumanMessage devuelve el mensaje para mostrar al usuario; fallback si
// el error no es de HTTP.
func HumanMessage(err error, fallback string) string {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Message()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "the server took too long to respond"
	}
	return fallback
}

// MaxBodyBytes acota lo que se lee de una respuesta; el backend manda
// imágenes base64 en línea.
const MaxBodyBytes = 8 << 20

// DoJSON manda in como JSON (nil = sin body) y decodifica la respuesta 2xx en
// out (nil = se descarta). pathOrURL es relativo a BaseURL salvo que sea
// absoluto. Los números en destinos any quedan como json.Number. Un status
// fuera de 2xx devuelve *HTTPError.
func (c *Client) DoJSON(
	ctx context.Context,
	method string,
	pathOrURL string,
	headers map[string]string,
	in any,
	out any,
) error {
	if c == nil || c.HTTP == nil {
		return errors.New("httpclient: nil client")
	}

	req, err := c.newRequest(ctx, method, pathOrURL, headers, in)
	if err != nil {
		return err
	}

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return fmt.Errorf("httpclient: rate limit: %w", err)
		}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	return decodeInto(raw, out)
}

func (c *Client) newRequest(ctx context.Context, method, pathOrURL string, extra map[string]string, in any) (*http.Request, error) {
	target, err := c.resolveURL(pathOrURL)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("httpclient: marshal json: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// los extra del llamador pisan a los de la sesión
	if c.Headers != nil {
		setHeaders(req, c.Headers(ctx))
	}
	setHeaders(req, extra)
	return req, nil
}

func decodeInto(raw []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("httpclient: unmarshal json: %w", err)
	}
	return nil
}

func setHeaders(req *http.Request, headers map[string]string) {
	for k, v := range headers {
		if strings.TrimSpace(k) == "" || strings.TrimSpace(v) == "" {
			continue
		}
		req.Header.Set(k, v)
	}
}

// resolveURL acepta URLs absolutas tal cual; un path exige BaseURL.
func (c *Client) resolveURL(pathOrURL string) (string, error) {
	pathOrURL = strings.TrimSpace(pathOrURL)
	switch {
	case pathOrURL == "":
		return "", errors.New("httpclient: empty url")
	case strings.HasPrefix(pathOrURL, "http://"), strings.HasPrefix(pathOrURL, "https://"):
		return pathOrURL, nil
	case strings.TrimSpace(c.BaseURL) == "":
		return "", errors.New("httpclient: relative path requires BaseURL")
	}
	return c.BaseURL + "/" + strings.TrimPrefix(pathOrURL, "/"), nil
}
