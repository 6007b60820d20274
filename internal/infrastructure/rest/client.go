package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/jhoicas/petstore-sync/internal/domain"
)

// Client cliente JSON para las APIs de recursos de la plataforma.
//
// Los reintentos viven aquí (capa de transporte), no en el sincronizador:
// solo se reintentan fallos de red y respuestas 5xx, con backoff exponencial
// acotado. Un 4xx es definitivo.
type Client struct {
	baseURL    string
	token      string
	maxRetries int
	httpClient *http.Client
}

// Options parámetros del cliente.
type Options struct {
	BaseURL    string
	Token      string // Bearer de servicio; vacío = sin header
	Timeout    time.Duration
	MaxRetries int
}

// NewClient construye el cliente para una base URL.
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 3
	}
	return &Client{
		baseURL:    opts.BaseURL,
		token:      opts.Token,
		maxRetries: opts.MaxRetries,
		httpClient: &http.Client{Timeout: opts.Timeout},
	}
}

// statusError error HTTP con código, para decidir reintento y not-found.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("API respondió %d: %s", e.code, e.body)
}

// doJSON ejecuta method path con in como cuerpo JSON (nil = sin cuerpo) y
// decodifica la respuesta en out (nil = se descarta). Un 404 devuelve
// domain.ErrNotFound; 5xx y fallos de red se reintentan.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body []byte
	if in != nil {
		var err error
		body, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("serializar cuerpo: %w", err)
		}
	}

	operation := func() ([]byte, error) {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err // fallo de red: reintentable
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 500 {
			return nil, &statusError{code: resp.StatusCode, body: truncate(data)}
		}
		if resp.StatusCode == http.StatusNotFound {
			return nil, backoff.Permanent(domain.ErrNotFound)
		}
		if resp.StatusCode >= 400 {
			return nil, backoff.Permanent(&statusError{code: resp.StatusCode, body: truncate(data)})
		}
		return data, nil
	}

	data, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(uint(c.maxRetries)),
	)
	if err != nil {
		return err
	}
	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decodificar respuesta de %s %s: %w", method, path, err)
		}
	}
	return nil
}

func truncate(b []byte) string {
	const max = 256
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
