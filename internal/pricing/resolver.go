package pricing

import (
	"fmt"
	"math"

	"github.com/vitorsdevstuff/file-energy/internal/domain"
	"github.com/vitorsdevstuff/file-energy/pkg/logger"
)

// priceTolerance допустимое расхождение клиентской и серверной цены
// (погрешность округления на клиенте)
const priceTolerance = 0.01

// Resolver разрешает покупательское намерение в конкретный тариф:
// цена в запрошенной валюте плюс пакет квот. Цены custom/team всегда
// пересчитываются на сервере по опубликованным таблицам; клиентская
// цена используется только для сверки.
type Resolver struct {
	log *logger.Logger
}

// NewResolver создает новый резолвер тарифов
func NewResolver(log *logger.Logger) *Resolver {
	return &Resolver{log: log}
}

// Resolve разрешает намерение в тариф. Валюта должна быть уже проверена
// вызывающей стороной.
func (r *Resolver) Resolve(intent domain.CheckoutIntent) (domain.ResolvedPlan, error) {
	switch intent.Type {
	case domain.CheckoutTypeStandard:
		return r.resolveStandard(intent)
	case domain.CheckoutTypeCustom:
		return r.resolveCustom(intent)
	case domain.CheckoutTypeTeam:
		return r.resolveTeam(intent)
	default:
		return domain.ResolvedPlan{}, domain.NewValidationError("unknown checkout type: %s", intent.Type)
	}
}

// resolveStandard ищет пресетный тариф по id; при отсутствии цены в
// запрошенной валюте используется EUR-значение
func (r *Resolver) resolveStandard(intent domain.CheckoutIntent) (domain.ResolvedPlan, error) {
	preset, ok := presetPlans[intent.PlanID]
	if !ok {
		return domain.ResolvedPlan{}, domain.NewValidationError("unknown plan id: %s", intent.PlanID)
	}

	price, ok := preset.Prices[intent.Currency]
	if !ok {
		price = preset.Prices["EUR"]
	}

	return domain.ResolvedPlan{
		Name:      preset.Name,
		Price:     price,
		Currency:  intent.Currency,
		PDFs:      preset.PDFs,
		Questions: preset.Questions,
		PDFSize:   preset.PDFSize,
		PDFPages:  preset.PDFPages,
		Seats:     1,
	}, nil
}

// resolveCustom пересчитывает цену кастомного набора квот по базовым
// ставкам и отклоняет клиентскую цену при расхождении
func (r *Resolver) resolveCustom(intent domain.CheckoutIntent) (domain.ResolvedPlan, error) {
	if intent.PDFs <= 0 || intent.Questions <= 0 {
		return domain.ResolvedPlan{}, domain.NewValidationError("custom plan requires positive document and question counts")
	}

	sizeCost, err := customSizeCost(intent.Size)
	if err != nil {
		return domain.ResolvedPlan{}, err
	}

	baseEUR := float64(intent.PDFs)*perPDFBase + float64(intent.Questions)*perQuestionBase + sizeCost
	price := roundPrice(baseEUR * currencyConversionRates[intent.Currency])

	if err := checkClientPrice(price, intent.ClientPrice, intent.Currency); err != nil {
		r.log.Warnw("Custom plan price mismatch", "derived", price, "client", intent.ClientPrice, "currency", intent.Currency)
		return domain.ResolvedPlan{}, err
	}

	return domain.ResolvedPlan{
		Name:      "Custom Plan",
		Price:     price,
		Currency:  intent.Currency,
		PDFs:      intent.PDFs,
		Questions: intent.Questions,
		PDFSize:   int(math.Round(intent.Size)),
		PDFPages:  100,
		APIAccess: intent.APIAccess,
		Seats:     1,
	}, nil
}

// resolveTeam масштабирует базовый тариф по табличному множителю мест
func (r *Resolver) resolveTeam(intent domain.CheckoutIntent) (domain.ResolvedPlan, error) {
	tier, ok := teamTiers[intent.Plan]
	if !ok {
		return domain.ResolvedPlan{}, domain.NewValidationError("unknown team plan: %s", intent.Plan)
	}

	multiplier, ok := teamUserMultipliers[intent.Users]
	if !ok {
		return domain.ResolvedPlan{}, domain.NewValidationError("team size must be between 1 and 8 users, got %d", intent.Users)
	}

	basePrice, ok := tier.BasePrices[intent.Currency]
	if !ok {
		basePrice = tier.BasePrices["EUR"]
	}
	price := roundPrice(basePrice * multiplier)

	if err := checkClientPrice(price, intent.ClientPrice, intent.Currency); err != nil {
		r.log.Warnw("Team plan price mismatch", "derived", price, "client", intent.ClientPrice, "currency", intent.Currency)
		return domain.ResolvedPlan{}, err
	}

	return domain.ResolvedPlan{
		Name:      fmt.Sprintf("%s Team Plan", tier.Name),
		Price:     price,
		Currency:  intent.Currency,
		PDFs:      scaleQuota(tier.BaseDocuments, multiplier),
		Questions: scaleQuota(tier.BaseQuestions, multiplier),
		PDFSize:   tier.MaxSize,
		PDFPages:  tier.PDFPages,
		Seats:     intent.Users,
	}, nil
}

// customSizeCost стоимость максимального размера документа (EUR),
// кусочно-линейная по опубликованным ставкам
func customSizeCost(sizeMB float64) (float64, error) {
	switch {
	case sizeMB <= 0:
		return 0, domain.NewValidationError("custom plan requires a positive max document size")
	case sizeMB <= sizeTier1Limit:
		return sizeMB * sizeRateTier1, nil
	case sizeMB <= sizeTier2Limit:
		return 10.99 + (sizeMB-sizeTier1Limit)*sizeRateTier2, nil
	case sizeMB <= sizeTier3Limit:
		return 29.99 + (sizeMB-sizeTier2Limit)*sizeRateTier3, nil
	default:
		return 0, domain.NewValidationError("max document size is limited to %dMB", sizeTier3Limit)
	}
}

// checkClientPrice сверяет клиентскую цену с серверной; нулевая
// клиентская цена означает "не передана" и пропускается
func checkClientPrice(derived, client float64, currency string) error {
	if client == 0 {
		return nil
	}
	if math.Abs(derived-client) > priceTolerance {
		return &domain.PriceMismatchError{Expected: derived, Got: client, Currency: currency}
	}
	return nil
}

func scaleQuota(base int, multiplier float64) int {
	return int(math.Round(float64(base) * multiplier))
}

func roundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}
