package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/novapay/paycore/internal/pkg/circuitbreaker"
	"github.com/novapay/paycore/internal/pkg/logger"
	"github.com/novapay/paycore/internal/pkg/models"
	"github.com/novapay/paycore/internal/pkg/retry"
)

// Gateway actions on the processor's transaction endpoint.
const (
	actionAuthCapture = "auth_capture"
	actionRefund      = "refund"
	actionVoid        = "void"
)

// ProcessorClient is the HTTP adapter over the external card processor.
// Transient failures are retried with backoff; a tripped breaker
// short-circuits calls to Unknown so admission can degrade instead of
// piling up on a dead provider.
type ProcessorClient struct {
	cfg        models.GatewayConfig
	httpClient *http.Client
	retrier    *retry.Retrier
	breaker    *circuitbreaker.CircuitBreaker
	logger     *logger.ZapLogger
}

// NewProcessorClient creates a new processor client
func NewProcessorClient(cfg *models.Config, l *logger.ZapLogger) *ProcessorClient {
	retryCfg := retry.Config{
		MaxRetries:    cfg.Gateway.MaxRetries,
		BaseDelay:     time.Duration(cfg.Gateway.BaseDelayMs) * time.Millisecond,
		MaxDelay:      time.Duration(cfg.Gateway.MaxDelayMs) * time.Millisecond,
		Multiplier:    2.0,
		Jitter:        true,
		RetryableFunc: retry.TransientFunc(),
	}

	breakerCfg := circuitbreaker.DefaultConfig("card-processor")
	breakerCfg.FailureThreshold = uint32(cfg.Gateway.FailureThreshold)
	breakerCfg.Timeout = time.Duration(cfg.Gateway.BreakerTimeoutS) * time.Second

	return &ProcessorClient{
		cfg: cfg.Gateway,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Gateway.TimeoutSeconds) * time.Second,
		},
		retrier: retry.New(retryCfg, l),
		breaker: circuitbreaker.New(breakerCfg, l),
		logger:  l,
	}
}

// BreakerStats exposes the breaker snapshot for the ops endpoint.
func (p *ProcessorClient) BreakerStats() circuitbreaker.Stats {
	return p.breaker.GetStats()
}

type transactionRequest struct {
	Action             string `json:"action"`
	AmountMinor        int64  `json:"amount_minor"`
	Currency           string `json:"currency"`
	PaymentMethodToken string `json:"payment_method_token,omitempty"`
	Reference          string `json:"reference"`
	GatewayRef         string `json:"gateway_ref,omitempty"`
}

type transactionResponse struct {
	Status         string `json:"status"`
	TransactionRef string `json:"transaction_ref"`
	Code           string `json:"code"`
	Message        string `json:"message"`
	State          string `json:"state,omitempty"`
}

// AuthorizeAndCapture submits a combined authorize+capture. The
// client-supplied idempotency key rides along as the processor's own
// idempotency header, so overlapping retries cannot double-charge.
func (p *ProcessorClient) AuthorizeAndCapture(ctx context.Context, tx *models.Transaction, paymentMethodToken string) (*models.GatewayResult, error) {
	req := transactionRequest{
		Action:             actionAuthCapture,
		AmountMinor:        tx.AmountMinor,
		Currency:           tx.Currency,
		PaymentMethodToken: paymentMethodToken,
		Reference:          tx.ID.String(),
	}
	return p.submit(ctx, req, tx.IdempotencyKey)
}

// Refund submits a full or partial refund against a captured charge.
func (p *ProcessorClient) Refund(ctx context.Context, tx *models.Transaction, amountMinor int64) (*models.GatewayResult, error) {
	req := transactionRequest{
		Action:      actionRefund,
		AmountMinor: amountMinor,
		Currency:    tx.Currency,
		Reference:   tx.ID.String(),
		GatewayRef:  tx.GatewayRef,
	}
	return p.submit(ctx, req, tx.IdempotencyKey+":refund")
}

// Void cancels an authorized or captured charge before settlement.
func (p *ProcessorClient) Void(ctx context.Context, tx *models.Transaction) (*models.GatewayResult, error) {
	req := transactionRequest{
		Action:     actionVoid,
		Currency:   tx.Currency,
		Reference:  tx.ID.String(),
		GatewayRef: tx.GatewayRef,
	}
	return p.submit(ctx, req, tx.IdempotencyKey+":void")
}

// Status is the reconciliation inquiry: a read of the authoritative
// transaction state at the processor, keyed by our reference. Never
// creates a charge.
func (p *ProcessorClient) Status(ctx context.Context, reference string) (*models.GatewayResult, error) {
	var response transactionResponse

	err := p.breaker.Execute(ctx, func(ctx context.Context) error {
		return p.retrier.Execute(ctx, func(ctx context.Context) error {
			url := fmt.Sprintf("%s/transactions/%s", strings.TrimRight(p.cfg.BaseURL, "/"), reference)
			httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return fmt.Errorf("failed to create status request: %w", err)
			}
			p.setAuthHeaders(httpReq)

			return p.doJSON(httpReq, &response)
		})
	})
	if err != nil {
		return p.unknownResult(err), nil
	}

	return p.toResult(&response), nil
}

func (p *ProcessorClient) submit(ctx context.Context, req transactionRequest, idempotencyKey string) (*models.GatewayResult, error) {
	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal gateway request: %w", err)
	}

	var response transactionResponse

	err = p.breaker.Execute(ctx, func(ctx context.Context) error {
		return p.retrier.Execute(ctx, func(ctx context.Context) error {
			url := strings.TrimRight(p.cfg.BaseURL, "/") + "/transactions"
			httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(reqBody))
			if err != nil {
				return fmt.Errorf("failed to create gateway request: %w", err)
			}
			httpReq.Header.Set("Content-Type", "application/json")
			httpReq.Header.Set("Idempotency-Key", idempotencyKey)
			p.setAuthHeaders(httpReq)

			return p.doJSON(httpReq, &response)
		})
	})
	if err != nil {
		// Exhausted retries, open breaker or caller timeout: the charge
		// may still have gone through on the provider side. Unknown,
		// never a decline.
		if errors.Is(err, circuitbreaker.ErrCircuitBreakerOpen) || errors.Is(err, circuitbreaker.ErrTooManyRequests) {
			p.logger.Warn("Gateway circuit open, short-circuiting to unknown",
				logger.String("reference", req.Reference))
		}
		return p.unknownResult(err), nil
	}

	return p.toResult(&response), nil
}

// doJSON performs the request and decodes the response. Provider 5xx
// is returned as an error so the retrier can classify it as transient;
// a decline is a successful call with a declined body.
func (p *ProcessorClient) doJSON(httpReq *http.Request, out *transactionResponse) error {
	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read gateway response: %w", err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("gateway internal server error: (status: %d, body: %s)", resp.StatusCode, string(respBody))
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gateway request rejected: (status: %d, body: %s)", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse gateway response: %w", err)
	}
	return nil
}

func (p *ProcessorClient) setAuthHeaders(req *http.Request) {
	req.Header.Set("X-Api-Login-Id", p.cfg.APILoginID)
	req.Header.Set("X-Transaction-Key", p.cfg.TransactionKey)
}

func (p *ProcessorClient) toResult(resp *transactionResponse) *models.GatewayResult {
	result := &models.GatewayResult{
		Reference:   resp.TransactionRef,
		Code:        resp.Code,
		Message:     resp.Message,
		State:       resp.State,
		ProcessedAt: time.Now().UTC(),
	}

	switch resp.Status {
	case "approved", "settled":
		result.Outcome = models.OutcomeApproved
	case "declined":
		result.Outcome = models.OutcomeDeclined
	default:
		result.Outcome = models.OutcomeUnknown
	}
	return result
}

func (p *ProcessorClient) unknownResult(err error) *models.GatewayResult {
	return &models.GatewayResult{
		Outcome:     models.OutcomeUnknown,
		Message:     err.Error(),
		ProcessedAt: time.Now().UTC(),
	}
}
