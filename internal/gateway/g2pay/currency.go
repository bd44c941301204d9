package g2pay

// SupportedCurrencies список валют, принимаемых шлюзом G2Pay.
// Порядок совпадает с опубликованным списком шлюза.
var SupportedCurrencies = []string{
	"EUR",
	"USD",
	"AUD",
	"CAD",
	"JPY",
	"SEK",
	"PLN",
	"BGN",
	"DKK",
	"CZK",
	"HUF",
	"NZD",
	"NOK",
	"GBP",
	"AED",
	"JOD",
	"KWD",
	"BHD",
	"SAR",
	"QAR",
	"OMR",
}

// IsSupportedCurrency проверяет точное (с учетом регистра) вхождение кода
// валюты в список поддерживаемых. Никакой нормализации: "eur" отклоняется.
// Единственные ворота перед любым движением денег.
func IsSupportedCurrency(currency string) bool {
	for _, c := range SupportedCurrencies {
		if c == currency {
			return true
		}
	}
	return false
}
