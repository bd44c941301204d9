package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitorsdevstuff/file-energy/internal/service"
	"github.com/vitorsdevstuff/file-energy/pkg/logger"
	"github.com/vitorsdevstuff/file-energy/pkg/req"
	"github.com/vitorsdevstuff/file-energy/pkg/res"
)

const (
	// Ограничение на размер тела запроса вебхука
	maxRequestBodySize = int64(65536)
)

// WebhookHandler обрабатывает платежные уведомления G2Pay: асинхронные
// POST-вебхуки и синхронные GET-возвраты браузера.
type WebhookHandler struct {
	service service.WebhookService
	baseURL string
	log     *logger.Logger
}

// NewWebhookHandler создает новый экземпляр WebhookHandler.
func NewWebhookHandler(service service.WebhookService, baseURL string, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		baseURL: baseURL,
		log:     log,
	}
}

// PaymentWebhookRequest тело POST-уведомления шлюза
type PaymentWebhookRequest struct {
	ReferenceID   string `json:"referenceId"`
	Status        string `json:"status"`
	TransactionID string `json:"transactionId"`
}

// HandlePaymentWebhook обрабатывает POST /api/webhooks/payment.
// Любое уведомление с referenceId подтверждается 200: шлюз ретраит
// неподтвержденные вебхуки, а повторная доставка нам ничего не сломает —
// переходы статусов идемпотентны.
func (h *WebhookHandler) HandlePaymentWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBodySize)
	defer func(body io.ReadCloser) { _ = body.Close() }(c.Request.Body)

	requestBody, err := req.Decode[PaymentWebhookRequest](c.Request.Body)
	if err != nil {
		h.log.Errorw("Failed to decode webhook body", "error", err)
		res.JsonResponse(c.Writer, res.ErrorResponse{Error: "Invalid request format"}, http.StatusBadRequest)
		c.Abort()
		return
	}

	if requestBody.ReferenceID == "" {
		h.log.Warnw("Webhook without reference ID", "status", requestBody.Status)
		res.JsonResponse(c.Writer, res.ErrorResponse{Error: "Missing reference ID"}, http.StatusBadRequest)
		c.Abort()
		return
	}

	h.log.Infow("Received payment webhook",
		"referenceID", requestBody.ReferenceID,
		"status", requestBody.Status,
		"transactionID", requestBody.TransactionID)

	if err := h.service.ProcessNotification(ctx, requestBody.ReferenceID, requestBody.Status, requestBody.TransactionID); err != nil {
		// Подтверждаем даже при ошибке обработки: ретраи шлюза не починят
		// ни отсутствующую подписку, ни упавшую базу, а разбор инцидента
		// идет по логам
		h.log.Errorw("Failed to process webhook notification",
			"error", err, "referenceID", requestBody.ReferenceID, "status", requestBody.Status)
	}

	res.JsonResponse(c.Writer, gin.H{"received": true}, http.StatusOK)
}

// HandlePaymentReturn обрабатывает GET /api/webhooks/payment — возврат
// браузера со страницы оплаты. Факт редиректа оплату не доказывает,
// поэтому статус перепроверяется у шлюза до активации подписки.
func (h *WebhookHandler) HandlePaymentReturn(c *gin.Context) {
	ctx := c.Request.Context()

	subscriptionID := c.Query("subscriptionId")
	if subscriptionID == "" {
		h.log.Warnw("Payment return without subscription ID")
		c.Redirect(http.StatusFound, h.returnURL("error=missing_subscription"))
		return
	}

	if err := h.service.ConfirmReturn(ctx, subscriptionID); err != nil {
		h.log.Warnw("Payment return not confirmed", "error", err, "subscriptionID", subscriptionID)
		c.Redirect(http.StatusFound, h.returnURL("error=payment_failed"))
		return
	}

	h.log.Infow("Payment return confirmed", "subscriptionID", subscriptionID)
	c.Redirect(http.StatusFound, h.returnURL("success=true"))
}

func (h *WebhookHandler) returnURL(query string) string {
	return h.baseURL + "/account/settings/subscription?" + query
}
