package g2pay

import "fmt"

// PaymentTypeDeposit единственный тип платежа, используемый сервисом
const PaymentTypeDeposit = "DEPOSIT"

// CheckoutRequest тело запроса на создание платежной сессии в G2Pay.
// Description не сериализуется — он участвует только в подписи запроса.
type CheckoutRequest struct {
	ReferenceID      string `json:"referenceId"`
	PaymentType      string `json:"paymentType"`
	Currency         string `json:"currency"`
	Amount           string `json:"amount"`
	ReturnURL        string `json:"returnUrl"`
	SuccessReturnURL string `json:"successReturnUrl"`
	DeclineReturnURL string `json:"declineReturnUrl"`
	WebhookURL       string `json:"webhookUrl"`
	Description      string `json:"-"`
}

// CreatePaymentParams параметры для построения запроса платежной сессии
type CreatePaymentParams struct {
	OrderID        string
	Amount         float64
	Currency       string
	Description    string
	SubscriptionID string
	IsFile         bool
}

// BuildCheckoutRequest строит запрос платежной сессии. Чистая функция:
// никакого I/O, одинаковые входы дают одинаковую структуру.
// successReturnUrl ведет на вебхук-эндпоинт с параметрами подписки —
// синхронный запасной путь, когда шлюз редиректит браузер вместо вызова
// асинхронного вебхука; webhookUrl — тот же эндпоинт без параметров.
func BuildCheckoutRequest(params CreatePaymentParams, baseURL string) CheckoutRequest {
	return CheckoutRequest{
		ReferenceID: params.OrderID,
		PaymentType: PaymentTypeDeposit,
		Currency:    params.Currency,
		Amount:      fmt.Sprintf("%.2f", params.Amount),
		ReturnURL:   baseURL + "/account/settings/subscription",
		SuccessReturnURL: fmt.Sprintf(
			"%s/api/webhooks/payment?subscriptionId=%s&isFile=%t&currency=%s",
			baseURL, params.SubscriptionID, params.IsFile, params.Currency,
		),
		DeclineReturnURL: baseURL + "/account/settings/subscription",
		WebhookURL:       baseURL + "/api/webhooks/payment",
		Description:      params.Description,
	}
}
