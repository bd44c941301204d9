package domain

// CheckoutType тип покупательского намерения
type CheckoutType string

const (
	CheckoutTypeStandard CheckoutType = "standard"
	CheckoutTypeCustom   CheckoutType = "custom"
	CheckoutTypeTeam     CheckoutType = "team"
)

// CheckoutIntent разобранное покупательское намерение.
// Для standard значим только PlanID; для custom — квоты и клиентская цена
// (пересчитывается на сервере); для team — имя тарифа и число мест.
type CheckoutIntent struct {
	Type     CheckoutType
	Currency string

	// standard
	PlanID string

	// custom
	PDFs      int
	Questions int
	Size      float64
	APIAccess bool

	// team. Documents приходит от веб-клиента вместе с числом мест, но
	// квоты командного тарифа выводятся из таблицы множителей, а не из него
	Plan      string
	Users     int
	Documents int

	// Цена, посчитанная клиентом (custom/team). Сервер пересчитывает ее
	// по опубликованным таблицам и отклоняет расхождение; значение 0
	// означает "не передана".
	ClientPrice float64
}
