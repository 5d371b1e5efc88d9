package payment

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

	"github.com/google/uuid"

	"storefront/internal/config"
	"storefront/internal/domain"
)

const (
	providerYooKassa = "yookassa"
	maxErrorBody     = 4 << 10
)

var errResponseInvalid = errors.New("yookassa response invalid")

// YooKassaGateway creates hosted-checkout payments over the REST API.
type YooKassaGateway struct {
	shopID      string
	secretKey   string
	apiURL      string
	returnURL   string
	productName string
	timeout     time.Duration
	client      *http.Client
	newKey      func() string
}

func NewYooKassaGateway(cfg config.YooKassaConfig, productName string, timeout time.Duration) *YooKassaGateway {
	return &YooKassaGateway{
		shopID:      strings.TrimSpace(cfg.ShopID),
		secretKey:   strings.TrimSpace(cfg.SecretKey),
		apiURL:      strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/"),
		returnURL:   strings.TrimSpace(cfg.ReturnURL),
		productName: productName,
		timeout:     timeout,
		client:      &http.Client{Timeout: timeout},
		newKey:      uuid.NewString,
	}
}

type yooAmount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

type yooPaymentRequest struct {
	Amount       yooAmount         `json:"amount"`
	Capture      bool              `json:"capture"`
	Confirmation yooConfirmation   `json:"confirmation"`
	Description  string            `json:"description"`
	Metadata     map[string]string `json:"metadata"`
	Receipt      yooReceipt        `json:"receipt"`
}

type yooConfirmation struct {
	Type            string `json:"type"`
	ReturnURL       string `json:"return_url,omitempty"`
	ConfirmationURL string `json:"confirmation_url,omitempty"`
}

type yooReceipt struct {
	Customer struct {
		Email string `json:"email"`
	} `json:"customer"`
	Items []yooReceiptItem `json:"items"`
}

type yooReceiptItem struct {
	Description    string    `json:"description"`
	Quantity       string    `json:"quantity"`
	Amount         yooAmount `json:"amount"`
	VatCode        int       `json:"vat_code"`
	PaymentMode    string    `json:"payment_mode"`
	PaymentSubject string    `json:"payment_subject"`
}

type yooPaymentResponse struct {
	ID           string          `json:"id"`
	Status       string          `json:"status"`
	Confirmation yooConfirmation `json:"confirmation"`
}

func (g *YooKassaGateway) CreatePayment(ctx context.Context, order *domain.Order) (*PaymentLink, error) {
	if !g.Configured() {
		return nil, domain.ErrGatewayNotConfigured
	}

	body, err := json.Marshal(g.buildRequest(order))
	if err != nil {
		return nil, fmt.Errorf("marshal payment request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiURL+"/payments", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build payment request: %w", err)
	}
	req.SetBasicAuth(g.shopID, g.secretKey)
	req.Header.Set("Idempotence-Key", g.newKey())
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, &UpstreamError{Provider: providerYooKassa, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Provider: providerYooKassa, StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{
			Provider:   providerYooKassa,
			StatusCode: resp.StatusCode,
			Body:       truncate(string(respBody), maxErrorBody),
		}
	}

	var result yooPaymentResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, &UpstreamError{Provider: providerYooKassa, StatusCode: resp.StatusCode, Body: truncate(string(respBody), maxErrorBody), Err: err}
	}
	if result.ID == "" || result.Confirmation.ConfirmationURL == "" {
		return nil, &UpstreamError{Provider: providerYooKassa, StatusCode: resp.StatusCode, Body: truncate(string(respBody), maxErrorBody), Err: errResponseInvalid}
	}

	return &PaymentLink{
		URL:               result.Confirmation.ConfirmationURL,
		ProviderReference: result.ID,
	}, nil
}

func (g *YooKassaGateway) buildRequest(order *domain.Order) yooPaymentRequest {
	amount := yooAmount{Value: order.Amount.StringFixed(2), Currency: order.Currency}

	req := yooPaymentRequest{
		Amount:  amount,
		Capture: true,
		Confirmation: yooConfirmation{
			Type:      "redirect",
			ReturnURL: strings.ReplaceAll(g.returnURL, "{order_id}", order.ID),
		},
		Description: fmt.Sprintf("%s, order %s", g.productName, order.ID),
		Metadata: map[string]string{
			"order_id": order.ID,
			"email":    order.Email,
		},
	}
	req.Receipt.Customer.Email = order.Email
	req.Receipt.Items = []yooReceiptItem{{
		Description:    g.productName,
		Quantity:       "1.00",
		Amount:         amount,
		VatCode:        1,
		PaymentMode:    "full_payment",
		PaymentSubject: "commodity",
	}}
	return req
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}

// Configured reports whether credentials and a return URL are set. The
// provider rejects redirect confirmations without a return URL.
func (g *YooKassaGateway) Configured() bool {
	return g.shopID != "" && g.secretKey != "" && g.returnURL != ""
}
