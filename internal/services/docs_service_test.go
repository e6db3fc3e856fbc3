package services

import (
	"testing"

	"backend/internal/domain/models"
)

func TestDocsServiceGenerateReceipt(t *testing.T) {
	loader := func(id int64) (receiptData, error) {
		return receiptData{
			BookingID:     id,
			Reference:     "ref-5",
			FullName:      "Awa Diop",
			Phone:         "770000000",
			Origin:        "Dakar",
			Destination:   "Touba",
			DepartureDate: "2025-06-01",
			DepartureTime: "08:00",
			Price:         2500,
			Status:        models.BookingConfirmed,
			PaymentStatus: models.PaymentPaid,
		}, nil
	}

	svc := DocsService{Loader: loader}

	pdf, filename, err := svc.GenerateReceipt(5)
	if err != nil {
		t.Fatalf("GenerateReceipt returned error: %v", err)
	}
	if len(pdf) == 0 || filename == "" {
		t.Fatalf("GenerateReceipt returned empty data")
	}
}
