package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vitorsdevstuff/file-energy/internal/domain"
	"github.com/vitorsdevstuff/file-energy/internal/middleware"
	"github.com/vitorsdevstuff/file-energy/internal/service"
	"github.com/vitorsdevstuff/file-energy/pkg/logger"
	"github.com/vitorsdevstuff/file-energy/pkg/req"
	"github.com/vitorsdevstuff/file-energy/pkg/res"
)

// CheckoutHandler обрабатывает HTTP запросы оформления подписки (для Gin).
type CheckoutHandler struct {
	service service.CheckoutService
	log     *logger.Logger
}

// NewCheckoutHandler создает новый экземпляр CheckoutHandler.
func NewCheckoutHandler(service service.CheckoutService, log *logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		log:     log,
	}
}

// CreateCheckoutRequest тело запроса POST /api/checkout. Числовые поля
// приходят строками — так их шлет веб-клиент.
type CreateCheckoutRequest struct {
	Type      string `json:"type" validate:"required,oneof=standard custom team"`
	Currency  string `json:"currency" validate:"required"`
	PlanID    string `json:"planId"`
	Price     string `json:"price"`
	PDFs      string `json:"pdfs"`
	Questions string `json:"questions"`
	Size      string `json:"size"`
	API       bool   `json:"api"`
	Plan      string `json:"plan"`
	Users     string `json:"users"`
	Documents string `json:"documents"`
}

// CreateCheckoutResponse успешный ответ с URL платежной страницы
type CreateCheckoutResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
}

// CreateCheckout обрабатывает POST /api/checkout
func (h *CheckoutHandler) CreateCheckout(c *gin.Context) {
	ctx := c.Request.Context()

	requestBody, err := req.Decode[CreateCheckoutRequest](c.Request.Body)
	if err != nil {
		h.log.Errorw("Failed to decode checkout request body", "error", err)
		res.JsonResponse(c.Writer, res.ErrorResponse{Error: "Invalid request format"}, http.StatusBadRequest)
		c.Abort()
		return
	}

	if err := req.IsValid(requestBody); err != nil {
		h.log.Errorw("Checkout request validation failed", "error", err)
		res.JsonResponse(c.Writer, res.ErrorResponse{Error: "Invalid request data", Details: err.Error()}, http.StatusBadRequest)
		c.Abort()
		return
	}

	userID := c.GetString(string(middleware.ContextUserIDKey))
	if userID == "" {
		res.JsonResponse(c.Writer, res.ErrorResponse{Error: "Unauthorized"}, http.StatusUnauthorized)
		c.Abort()
		return
	}

	intent, err := buildIntent(requestBody)
	if err != nil {
		h.log.Warnw("Malformed checkout request fields", "error", err, "userID", userID)
		res.JsonResponse(c.Writer, res.ErrorResponse{Error: err.Error()}, http.StatusBadRequest)
		c.Abort()
		return
	}

	redirectURL, err := h.service.Checkout(ctx, userID, intent)
	if err != nil {
		h.respondCheckoutError(c, err, userID)
		return
	}

	res.JsonResponse(c.Writer, CreateCheckoutResponse{Success: true, URL: redirectURL}, http.StatusOK)
}

// buildIntent разбирает строковые поля запроса в типизированный интент
func buildIntent(body CreateCheckoutRequest) (domain.CheckoutIntent, error) {
	intent := domain.CheckoutIntent{
		Type:      domain.CheckoutType(body.Type),
		Currency:  body.Currency,
		PlanID:    body.PlanID,
		APIAccess: body.API,
		Plan:      body.Plan,
	}

	var err error
	if body.Price != "" {
		intent.ClientPrice, err = strconv.ParseFloat(body.Price, 64)
		if err != nil {
			return domain.CheckoutIntent{}, domain.NewValidationError("invalid price: %s", body.Price)
		}
	}
	if body.PDFs != "" {
		intent.PDFs, err = strconv.Atoi(body.PDFs)
		if err != nil {
			return domain.CheckoutIntent{}, domain.NewValidationError("invalid pdfs: %s", body.PDFs)
		}
	}
	if body.Questions != "" {
		intent.Questions, err = strconv.Atoi(body.Questions)
		if err != nil {
			return domain.CheckoutIntent{}, domain.NewValidationError("invalid questions: %s", body.Questions)
		}
	}
	if body.Size != "" {
		intent.Size, err = strconv.ParseFloat(body.Size, 64)
		if err != nil {
			return domain.CheckoutIntent{}, domain.NewValidationError("invalid size: %s", body.Size)
		}
	}
	if body.Users != "" {
		intent.Users, err = strconv.Atoi(body.Users)
		if err != nil {
			return domain.CheckoutIntent{}, domain.NewValidationError("invalid users: %s", body.Users)
		}
	}
	if body.Documents != "" {
		intent.Documents, err = strconv.Atoi(body.Documents)
		if err != nil {
			return domain.CheckoutIntent{}, domain.NewValidationError("invalid documents: %s", body.Documents)
		}
	}

	return intent, nil
}

func (h *CheckoutHandler) respondCheckoutError(c *gin.Context, err error, userID string) {
	var gatewayErr *domain.GatewayError

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		h.log.Warnw("Checkout rejected", "error", err, "userID", userID)
		res.JsonResponse(c.Writer, res.ErrorResponse{Error: err.Error()}, http.StatusBadRequest)
	case errors.Is(err, domain.ErrNotFound):
		h.log.Warnw("Checkout for unknown entity", "error", err, "userID", userID)
		res.JsonResponse(c.Writer, res.ErrorResponse{Error: err.Error()}, http.StatusNotFound)
	case errors.Is(err, domain.ErrUnauthenticated):
		res.JsonResponse(c.Writer, res.ErrorResponse{Error: "Unauthorized"}, http.StatusUnauthorized)
	case errors.As(err, &gatewayErr):
		h.log.Errorw("Gateway rejected checkout", "error", err, "userID", userID)
		res.JsonResponse(c.Writer, res.ErrorResponse{Error: gatewayErr.Message}, http.StatusInternalServerError)
	default:
		h.log.Errorw("Checkout failed", "error", err, "userID", userID)
		res.JsonResponse(c.Writer, res.ErrorResponse{Error: "Failed to create checkout session"}, http.StatusInternalServerError)
	}
	c.Abort()
}
