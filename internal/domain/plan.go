package domain

import "time"

// Plan представляет собой строку каталога тарифных планов.
// Пресетные планы сидируются заранее; кастомные и командные планы
// создаются лениво по ключу (name, price), чтобы повторные одинаковые
// покупки переиспользовали одну строку каталога.
type Plan struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Currency  string    `json:"currency"`
	PDFs      int       `json:"pdfs"`
	Questions int       `json:"questions"`
	PDFSize   int       `json:"pdf_size"`
	PDFPages  int       `json:"pdf_pages"`
	Status    bool      `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ResolvedPlan результат разрешения покупательского намерения:
// конкретная цена в запрошенной валюте плюс пакет квот
type ResolvedPlan struct {
	Name      string
	Price     float64
	Currency  string
	PDFs      int
	Questions int
	PDFSize   int
	PDFPages  int
	APIAccess bool
	Seats     int
}
