package pricing

// Опубликованные тарифные таблицы. Цены предрассчитаны для всех валют
// с EUR в качестве базовой; значения должны совпадать с прайсингом на
// сайте байт-в-байт, поэтому таблицы не генерируются из курсов.

// PresetPlan пресетный тариф с пакетом квот и картой цен по валютам
type PresetPlan struct {
	ID        string
	Name      string
	PDFs      int
	Questions int
	PDFSize   int
	PDFPages  int
	Prices    map[string]float64
}

var presetPlans = map[string]PresetPlan{
	"1": {
		ID: "1", Name: "Test", PDFs: 5, Questions: 50, PDFSize: 10, PDFPages: 50,
		Prices: map[string]float64{
			"EUR": 2.75, "USD": 2.99, "AUD": 4.59, "CAD": 4.05, "JPY": 463,
			"SEK": 33.15, "PLN": 12.20, "BGN": 5.38, "DKK": 20.52, "CZK": 72.45,
			"HUF": 1188, "NZD": 5.09, "NOK": 32.44, "GBP": 2.36, "AED": 10.98,
			"JOD": 2.12, "KWD": 0.92, "BHD": 1.13, "SAR": 11.21, "QAR": 10.89,
			"OMR": 1.15,
		},
	},
	"2": {
		ID: "2", Name: "Basic", PDFs: 10, Questions: 150, PDFSize: 15, PDFPages: 100,
		Prices: map[string]float64{
			"EUR": 7.99, "USD": 8.70, "AUD": 13.33, "CAD": 11.78, "JPY": 1349,
			"SEK": 96.41, "PLN": 35.50, "BGN": 15.65, "DKK": 59.70, "CZK": 210.80,
			"HUF": 3459, "NZD": 14.81, "NOK": 94.47, "GBP": 6.86, "AED": 31.96,
			"JOD": 6.17, "KWD": 2.67, "BHD": 3.28, "SAR": 32.63, "QAR": 31.68,
			"OMR": 3.35,
		},
	},
	"3": {
		ID: "3", Name: "Intermediate", PDFs: 20, Questions: 250, PDFSize: 20, PDFPages: 150,
		Prices: map[string]float64{
			"EUR": 19.99, "USD": 21.77, "AUD": 33.34, "CAD": 29.47, "JPY": 3373,
			"SEK": 241.05, "PLN": 88.76, "BGN": 39.12, "DKK": 149.25, "CZK": 526.99,
			"HUF": 8646, "NZD": 37.03, "NOK": 236.17, "GBP": 17.15, "AED": 79.90,
			"JOD": 15.43, "KWD": 6.69, "BHD": 8.20, "SAR": 81.59, "QAR": 79.21,
			"OMR": 8.37,
		},
	},
	"4": {
		ID: "4", Name: "Advanced", PDFs: 40, Questions: 400, PDFSize: 35, PDFPages: 200,
		Prices: map[string]float64{
			"EUR": 34.99, "USD": 38.11, "AUD": 58.36, "CAD": 51.58, "JPY": 5903,
			"SEK": 421.83, "PLN": 155.33, "BGN": 68.46, "DKK": 261.18, "CZK": 922.23,
			"HUF": 15131, "NZD": 64.80, "NOK": 413.33, "GBP": 30.01, "AED": 139.82,
			"JOD": 27.00, "KWD": 11.70, "BHD": 14.35, "SAR": 142.91, "QAR": 138.69,
			"OMR": 14.65,
		},
	},
	"5": {
		ID: "5", Name: "Professional", PDFs: 70, Questions: 700, PDFSize: 50, PDFPages: 300,
		Prices: map[string]float64{
			"EUR": 59.99, "USD": 65.35, "AUD": 100.12, "CAD": 88.45, "JPY": 10123,
			"SEK": 723.74, "PLN": 266.43, "BGN": 117.41, "DKK": 448.07, "CZK": 1582.42,
			"HUF": 25962, "NZD": 111.19, "NOK": 709.26, "GBP": 51.45, "AED": 239.94,
			"JOD": 46.33, "KWD": 20.09, "BHD": 24.63, "SAR": 245.20, "QAR": 238.05,
			"OMR": 25.14,
		},
	},
}

// TeamTier базовый тариф для командной подписки
type TeamTier struct {
	Name          string
	BaseDocuments int
	BaseQuestions int
	MaxSize       int
	PDFPages      int
	BasePrices    map[string]float64
}

var teamTiers = map[string]TeamTier{
	"Basic": {
		Name: "Basic", BaseDocuments: 10, BaseQuestions: 150, MaxSize: 15, PDFPages: 100,
		BasePrices: presetPlans["2"].Prices,
	},
	"Intermediate": {
		Name: "Intermediate", BaseDocuments: 20, BaseQuestions: 250, MaxSize: 20, PDFPages: 150,
		BasePrices: presetPlans["3"].Prices,
	},
	"Advanced": {
		Name: "Advanced", BaseDocuments: 40, BaseQuestions: 400, MaxSize: 35, PDFPages: 200,
		BasePrices: presetPlans["4"].Prices,
	},
	"Professional": {
		Name: "Professional", BaseDocuments: 70, BaseQuestions: 700, MaxSize: 50, PDFPages: 300,
		BasePrices: presetPlans["5"].Prices,
	},
}

// teamUserMultipliers нелинейная кривая скидки за места. Значения
// фиксированы контрактом прайсинга: только табличный lookup, никакой
// интерполяции за пределами 1-8 мест.
var teamUserMultipliers = map[int]float64{
	1: 1,
	2: 1.7,
	3: 2.4,
	4: 3,
	5: 3.5,
	6: 3.9,
	7: 4.19,
	8: 4.4,
}

// Базовые ставки кастомного прайсинга (в EUR)
const (
	perPDFBase      = 10.99 / 5
	perQuestionBase = 10.99 / 103

	// Кусочно-линейная стоимость максимального размера документа:
	// ставка за MB до 9.7MB, затем маржинальные ставки до 30 и до 50MB
	sizeRateTier1 = 10.99 / 9.7
	sizeRateTier2 = (29.99 - 10.99) / (30 - 9.7)
	sizeRateTier3 = (49.99 - 29.99) / (50 - 30)

	sizeTier1Limit = 9.7
	sizeTier2Limit = 30
	sizeTier3Limit = 50
)

// currencyConversionRates курсы конвертации из EUR для кастомного прайсинга
var currencyConversionRates = map[string]float64{
	"EUR": 1,
	"USD": 1.09,
	"AUD": 1.67,
	"CAD": 1.47,
	"JPY": 168.5,
	"SEK": 12.07,
	"PLN": 4.44,
	"BGN": 1.96,
	"DKK": 7.46,
	"CZK": 26.35,
	"HUF": 432.5,
	"NZD": 1.85,
	"NOK": 11.82,
	"GBP": 0.86,
	"AED": 4.00,
	"JOD": 0.77,
	"KWD": 0.34,
	"BHD": 0.41,
	"SAR": 4.08,
	"QAR": 3.97,
	"OMR": 0.42,
}
