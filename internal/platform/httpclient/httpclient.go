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

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/logger"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/metrics"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	DefaultTimeout = 10 * time.Second

	// DefaultMaxBody limita lo que se lee de una respuesta (incluye PDFs y backups).
	DefaultMaxBody = 32 << 20
)

var ErrRespuestaMuyGrande = errors.New("httpclient: la respuesta supera el tamaño máximo")

var tracer = otel.Tracer("vetclinic.platform.httpclient")

// Client envuelve *http.Client con base URL, token y helpers comunes para los repositorios REST.
type Client struct {
	HTTP    *http.Client
	BaseURL string // si se define, los métodos aceptan paths relativos

	// Token devuelve el bearer token a inyectar; "" = sin Authorization.
	Token func(ctx context.Context) string

	Logger  logger.Logger
	Metrics *metrics.APIMetrics

	// MaxBody en bytes; 0 => DefaultMaxBody. Una respuesta más grande es un error, nunca se trunca.
	MaxBody int64
}

// New crea un Client con timeout razonable.
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		HTTP: &http.Client{
			Timeout: timeout,
		},
		Logger: logger.Nop(),
	}
}

// NewWithBaseURL crea un Client con BaseURL + timeout.
func NewWithBaseURL(baseURL string, timeout time.Duration) (*Client, error) {
	c := New(timeout)
	if strings.TrimSpace(baseURL) == "" {
		return c, nil
	}
	_, err := url.ParseRequestURI(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	c.BaseURL = strings.TrimRight(baseURL, "/")
	return c, nil
}

// HTTPError representa una respuesta no-2xx sin envelope interpretable.
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

// DoJSON hace un request JSON sin interpretar envelope (p.ej. /auth/me, que solo importa por su status).
// - pathOrURL: URL absoluta o path relativo si BaseURL está seteado
// - in: body a enviar (opcional). Si nil => no body.
// - out: donde decodificar JSON (opcional). Si nil => ignora body.
// Retorna *HTTPError si status no es 2xx.
func (c *Client) DoJSON(
	ctx context.Context,
	method string,
	pathOrURL string,
	headers map[string]string,
	in any,
	out any,
) error {
	resp, raw, err := c.do(ctx, method, pathOrURL, nil, headers, in, "application/json")
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("httpclient: unmarshal json: %w", err)
	}
	return nil
}

// do arma el request, inyecta headers comunes, mide y traza. Devuelve el body leído completo.
func (c *Client) do(
	ctx context.Context,
	method string,
	pathOrURL string,
	query url.Values,
	headers map[string]string,
	in any,
	accept string,
) (*http.Response, []byte, error) {
	if c == nil || c.HTTP == nil {
		return nil, nil, errors.New("httpclient: nil client")
	}

	fullURL, err := c.resolveURL(pathOrURL)
	if err != nil {
		return nil, nil, err
	}
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, nil, fmt.Errorf("httpclient: marshal json: %w", err)
		}
		body = bytes.NewReader(b)
	}

	resource := resourceOf(pathOrURL)
	ctx, span := tracer.Start(ctx, "api."+strings.ToLower(method)+"."+resource)
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("vetclinic.resource", resource),
	)

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, nil, fmt.Errorf("httpclient: new request: %w", err)
	}

	req.Header.Set("Accept", accept)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", requestID(ctx))
	if c.Token != nil {
		if tok := strings.TrimSpace(c.Token(ctx)); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	for k, v := range headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.Metrics.ObserveRequest(method, resource, 0, time.Since(start).Seconds())
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		c.logger().Warn("api request failed", map[string]any{
			"method":   method,
			"resource": resource,
			"err":      err,
		})
		return nil, nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := readAtMost(resp.Body, c.MaxBody)
	c.Metrics.ObserveRequest(method, resource, resp.StatusCode, time.Since(start).Seconds())
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if errors.Is(err, ErrRespuestaMuyGrande) {
		span.RecordError(err)
		span.SetStatus(codes.Error, "body too large")
		c.logger().Warn("api response too large", map[string]any{
			"method":   method,
			"resource": resource,
			"err":      err,
		})
		return nil, nil, err
	}
	if err != nil {
		span.RecordError(err)
		return nil, nil, fmt.Errorf("%w: read body: %v", ErrTransport, err)
	}
	if resp.StatusCode >= 400 {
		span.SetStatus(codes.Error, resp.Status)
	}

	c.logger().Debug("api request", map[string]any{
		"method":   method,
		"resource": resource,
		"status":   resp.StatusCode,
		"latency":  time.Since(start).String(),
	})

	return resp, raw, nil
}

func (c *Client) logger() logger.Logger {
	if c.Logger == nil {
		return logger.Nop()
	}
	return c.Logger
}

func (c *Client) resolveURL(pathOrURL string) (string, error) {
	pathOrURL = strings.TrimSpace(pathOrURL)
	if pathOrURL == "" {
		return "", errors.New("httpclient: empty url")
	}

	// Si ya es URL absoluta, úsala tal cual.
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return pathOrURL, nil
	}

	// Si no es absoluta, requiere BaseURL.
	if strings.TrimSpace(c.BaseURL) == "" {
		return "", errors.New("httpclient: relative path requires BaseURL")
	}

	if !strings.HasPrefix(pathOrURL, "/") {
		pathOrURL = "/" + pathOrURL
	}
	return c.BaseURL + pathOrURL, nil
}

// resourceOf toma el primer segmento relevante del path ("/v1/configuracion/horarios" => "configuracion").
// Se usa como label de métricas, así que no debe incluir ids.
func resourceOf(pathOrURL string) string {
	p := pathOrURL
	if u, err := url.Parse(pathOrURL); err == nil && u.Path != "" {
		p = u.Path
	}
	for _, seg := range strings.Split(strings.Trim(p, "/"), "/") {
		if seg == "" || seg == "api" || seg == "v1" {
			continue
		}
		return seg
	}
	return "root"
}

// requestID reutiliza el id de chi si el request entrante lo tiene.
func requestID(ctx context.Context) string {
	if id := chimw.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

// readAtMost lee hasta max bytes; si hay más, falla en vez de devolver el body cortado.
func readAtMost(r io.Reader, max int64) ([]byte, error) {
	if max <= 0 {
		max = DefaultMaxBody
	}
	raw, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(raw)) > max {
		return nil, fmt.Errorf("%w (%d bytes)", ErrRespuestaMuyGrande, max)
	}
	return raw, nil
}
