package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/infrastructure/payment"
	"storefront/internal/service"
)

// HealthChecker reports pool status; database.Service satisfies it.
type HealthChecker interface {
	Health(ctx context.Context) map[string]string
}

type Handler struct {
	promos    service.PromoService
	orders    service.OrderService
	webhooks  service.WebhookService
	downloads service.DownloadService
	health    HealthChecker
	log       *zap.Logger
}

func New(
	promos service.PromoService,
	orders service.OrderService,
	webhooks service.WebhookService,
	downloads service.DownloadService,
	health HealthChecker,
	log *zap.Logger,
) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		promos:    promos,
		orders:    orders,
		webhooks:  webhooks,
		downloads: downloads,
		health:    health,
		log:       log,
	}
}

type checkPromoRequest struct {
	PromoCode string `json:"promo_code"`
}

type checkPromoResponse struct {
	Valid           bool         `json:"valid"`
	DiscountPercent int          `json:"discount_percent"`
	DiscountAmount  *json.Number `json:"discount_amount"`
	RemainingUses   int          `json:"remaining_uses"`
}

func (h *Handler) CheckPromo(c *gin.Context) {
	var req checkPromoRequest
	if err := decodeBody(c, &req); err != nil {
		respondError(c, domain.ErrInvalidRequest)
		return
	}
	if strings.TrimSpace(req.PromoCode) == "" {
		respondError(c, domain.ErrPromoCodeRequired)
		return
	}

	v, err := h.promos.Validate(c.Request.Context(), req.PromoCode)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := v.Err(); err != nil {
		respondError(c, err)
		return
	}

	resp := checkPromoResponse{
		Valid:           true,
		DiscountPercent: v.DiscountPercent,
		RemainingUses:   v.RemainingUses,
	}
	if v.DiscountAmount.Valid {
		resp.DiscountAmount = number(v.DiscountAmount.Decimal)
	}
	c.JSON(http.StatusOK, resp)
}

type paymentRequest struct {
	Email     string `json:"email"`
	PromoCode string `json:"promo_code"`
}

type paymentResponse struct {
	PaymentURL      string       `json:"payment_url"`
	OrderID         string       `json:"order_id"`
	Amount          *json.Number `json:"amount"`
	DiscountApplied bool         `json:"discount_applied"`
	PaymentID       string       `json:"payment_id,omitempty"`
}

func (h *Handler) Payment(c *gin.Context) {
	var req paymentRequest
	if err := decodeBody(c, &req); err != nil {
		respondError(c, domain.ErrInvalidRequest)
		return
	}

	checkout, err := h.orders.Checkout(c.Request.Context(), req.Email, req.PromoCode)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := paymentResponse{
		PaymentURL:      checkout.Link.URL,
		OrderID:         checkout.Order.ID,
		Amount:          number(checkout.Order.Amount),
		DiscountApplied: checkout.Order.DiscountApplied,
	}
	if ref := checkout.Link.ProviderReference; ref != "" && ref != checkout.Order.ID {
		resp.PaymentID = ref
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) PaymentWebhook(c *gin.Context) {
	n := payment.Notification{
		MerchantID: field(c, "merchant_id", "m"),
		Amount:     field(c, "amount", "oa"),
		OrderID:    field(c, "merchant_order_id", "o"),
		Signature:  field(c, "sign", "s"),
		Email:      field(c, "custom_field", "cf"),
	}

	if err := h.webhooks.Confirm(c.Request.Context(), n); err != nil {
		if !errors.Is(err, domain.ErrInvalidSignature) {
			_ = c.Error(err)
		}
		c.String(http.StatusForbidden, "Invalid signature")
		return
	}
	c.String(http.StatusOK, "OK")
}

func (h *Handler) DownloadGame(c *gin.Context) {
	info, err := h.downloads.Resolve(c.Request.Context(), c.Query("order_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"download_url": info.DownloadURL,
		"email":        info.Email,
	})
}

func (h *Handler) Health(c *gin.Context) {
	stats := h.health.Health(c.Request.Context())
	if stats["status"] != "up" {
		c.JSON(http.StatusServiceUnavailable, stats)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// decodeBody reads a JSON body. An empty body decodes as {} so the field
// checks report what is missing.
func decodeBody(c *gin.Context, v any) error {
	err := json.NewDecoder(c.Request.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// field reads the first non-empty alias from the query string, then from a
// form body.
func field(c *gin.Context, names ...string) string {
	for _, name := range names {
		if v := c.Query(name); v != "" {
			return v
		}
	}
	for _, name := range names {
		if v := c.PostForm(name); v != "" {
			return v
		}
	}
	return ""
}

func number(d decimal.Decimal) *json.Number {
	n := json.Number(d.String())
	return &n
}
