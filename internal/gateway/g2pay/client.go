package g2pay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/vitorsdevstuff/file-energy/internal/domain"
	"github.com/vitorsdevstuff/file-energy/pkg/logger"
)

const (
	// defaultTimeout таймаут на вызовы шлюза: истечение считается ошибкой
	// шлюза, а не бесконечным ожиданием
	defaultTimeout = 15 * time.Second

	paymentsPath = "/api/v1/payments"

	// genericCheckoutError текст ошибки, когда шлюз не вернул error_message
	genericCheckoutError = "Failed to create checkout session"
)

// Client представляет клиент для работы с API G2Pay
type Client struct {
	baseURL     string
	merchantKey string
	password    string
	bearerToken string
	httpClient  *http.Client
	log         *logger.Logger
}

// Config конфигурация для клиента G2Pay
type Config struct {
	CheckoutURL string
	MerchantKey string
	Password    string
	BearerToken string
}

// NewClient создает новый клиент G2Pay
func NewClient(cfg Config, log *logger.Logger) *Client {
	baseURL := cfg.CheckoutURL
	if baseURL == "" {
		baseURL = "https://engine.g2pay.io"
	}

	return &Client{
		baseURL:     baseURL,
		merchantKey: cfg.MerchantKey,
		password:    cfg.Password,
		bearerToken: cfg.BearerToken,
		httpClient:  &http.Client{Timeout: defaultTimeout},
		log:         log,
	}
}

// CheckoutResponse ответ шлюза на создание платежной сессии
type CheckoutResponse struct {
	Result struct {
		RedirectURL   string `json:"redirectUrl"`
		TransactionID string `json:"transactionId,omitempty"`
	} `json:"result"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// PaymentStatus статус платежа, возвращаемый шлюзом при проверке
type PaymentStatus struct {
	Result struct {
		Status        string `json:"status"`
		TransactionID string `json:"transactionId,omitempty"`
	} `json:"result"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// CreateCheckoutSession создает платежную сессию в G2Pay и возвращает
// нормализованный ответ. Транспортные ошибки (ответ не получен)
// пробрасываются как есть, кроме таймаута — он считается ошибкой шлюза.
// Не-2xx статус превращается в GatewayError с текстом error_message шлюза,
// либо с общим сообщением, если шлюз текста не прислал.
func (c *Client) CreateCheckoutSession(ctx context.Context, data CheckoutRequest) (*CheckoutResponse, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal checkout request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+paymentsPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.bearerToken)
	// Контрольная подпись запроса — документированный механизм целостности
	// шлюза, прикладывается к каждому исходящему запросу
	req.Header.Set("X-Signature", GeneratePaymentHash(
		data.ReferenceID, data.Amount, data.Currency, data.Description, c.password,
	))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, domain.NewGatewayError(genericCheckoutError, 0, err)
		}
		return nil, err
	}
	defer resp.Body.Close()

	var result CheckoutResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&result)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := result.ErrorMessage
		if message == "" {
			message = genericCheckoutError
		}
		c.log.Errorw("G2Pay rejected checkout session", "status", resp.StatusCode, "message", message, "referenceID", data.ReferenceID)
		return nil, domain.NewGatewayError(message, resp.StatusCode, nil)
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("failed to decode checkout response: %w", decodeErr)
	}

	c.log.Infow("G2Pay checkout session created", "referenceID", data.ReferenceID, "transactionID", result.Result.TransactionID)
	return &result, nil
}

// VerifyPayment запрашивает у шлюза статус платежа по referenceId.
// Используется синхронным путем подтверждения (браузерный редирект),
// чтобы не активировать подписку по одному лишь факту редиректа.
func (c *Client) VerifyPayment(ctx context.Context, referenceID string) (*PaymentStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+paymentsPath+"/"+referenceID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.bearerToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, domain.NewGatewayError("failed to verify payment", 0, err)
		}
		return nil, err
	}
	defer resp.Body.Close()

	var status PaymentStatus
	decodeErr := json.NewDecoder(resp.Body).Decode(&status)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := status.ErrorMessage
		if message == "" {
			message = "failed to verify payment"
		}
		c.log.Errorw("G2Pay payment verification failed", "status", resp.StatusCode, "message", message, "referenceID", referenceID)
		return nil, domain.NewGatewayError(message, resp.StatusCode, nil)
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("failed to decode payment status: %w", decodeErr)
	}

	return &status, nil
}
