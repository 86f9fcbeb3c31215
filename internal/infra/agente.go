package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// printRequest is the payload the local printing agent expects.
type printRequest struct {
	Text    string `json:"text"`
	Printer string `json:"printer"`
}

// AgenteImpresion is an HTTP client for the local printing agent, a small
// sidecar process that owns the physical thermal printer. Calls go through
// a circuit breaker so a dead agent fails fast instead of stalling every
// invoice on the HTTP timeout.
type AgenteImpresion struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
	cb         *CircuitBreaker
}

func NewAgenteImpresion(baseURL, apiToken string) *AgenteImpresion {
	return &AgenteImpresion{
		baseURL:    baseURL,
		apiToken:   apiToken,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cb:         NewCircuitBreaker(DefaultCBConfig()),
	}
}

// Imprimir sends the rendered ticket text to the agent for the named printer.
func (c *AgenteImpresion) Imprimir(ctx context.Context, texto, impresora string) error {
	return c.cb.Execute(func() error {
		body, err := json.Marshal(printRequest{Text: texto, Printer: impresora})
		if err != nil {
			return fmt.Errorf("agente: marshal payload: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/print", bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("agente: create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Api-Token", c.apiToken)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("agente: unreachable: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("agente: returned %d", resp.StatusCode)
		}
		return nil
	})
}

// Estado reports the circuit breaker state for the health endpoint.
func (c *AgenteImpresion) Estado() string { return c.cb.State().String() }
