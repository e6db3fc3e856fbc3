package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"backend/internal/domain/models"
	"backend/internal/repositories"
	"backend/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the per-booking PDF receipt handed to riders after
// payment. Loader is injectable for tests.
type DocsService struct {
	Bookings  repositories.BookingRepository
	Trips     repositories.TripRepository
	RequestID string
	Loader    func(int64) (receiptData, error)
}

type receiptData struct {
	BookingID     int64
	Reference     string
	FullName      string
	Phone         string
	Origin        string
	Destination   string
	DepartureDate string
	DepartureTime string
	Price         int64
	Status        string
	PaymentStatus string
}

func (s DocsService) GenerateReceipt(bookingID int64) ([]byte, string, error) {
	data, err := s.loadReceiptData(bookingID)
	if err != nil {
		return nil, "", wrapStorage(err, "failed to load booking")
	}
	utils.LogEvent(s.RequestID, "docs", "generate_receipt", fmt.Sprintf("booking_id=%d", bookingID))
	return buildReceiptPDF(data)
}

func (s DocsService) loadReceiptData(bookingID int64) (receiptData, error) {
	if s.Loader != nil {
		return s.Loader(bookingID)
	}

	booking, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return receiptData{}, err
	}
	out := receiptData{
		BookingID:     booking.ID,
		Reference:     booking.Reference,
		FullName:      booking.FullName,
		Phone:         booking.Phone,
		Status:        booking.Status,
		PaymentStatus: booking.PaymentStatus,
	}
	// A deleted trip still yields a receipt with the booking side filled in.
	if trip, err := s.Trips.GetByID(booking.TripID); err == nil {
		out.Origin = trip.Origin
		out.Destination = trip.Destination
		out.DepartureDate = trip.DepartureDate
		out.DepartureTime = trip.DepartureTime
		out.Price = trip.Price
	}
	return out, nil
}

func buildReceiptPDF(d receiptData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; the translator keeps the accented French intact.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Reçu de réservation"), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, tr("DaBus - Reçu de réservation"))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Référence   : %s", safe(d.Reference, "-")),
		fmt.Sprintf("Passager    : %s", safe(d.FullName, "-")),
		fmt.Sprintf("Téléphone   : %s", safe(d.Phone, "-")),
		fmt.Sprintf("Trajet      : %s -> %s", safe(d.Origin, "-"), safe(d.Destination, "-")),
		fmt.Sprintf("Départ      : %s %s", safe(d.DepartureDate, "-"), safe(d.DepartureTime, "-")),
		fmt.Sprintf("Prix        : %s", utils.FormatCFA(d.Price)),
		fmt.Sprintf("Statut      : %s", safe(d.Status, "-")),
		fmt.Sprintf("Paiement    : %s", safe(d.PaymentStatus, "-")),
		fmt.Sprintf("Émis le     : %s", time.Now().Format("02/01/2006 15:04")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, tr(line))
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	note := "Ce reçu est valable pour une place. Présentez-le au départ."
	if d.PaymentStatus != models.PaymentPaid {
		note = "Réservation en attente de paiement. La place n'est pas encore garantie."
	}
	pdf.MultiCell(0, 6, tr(note), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("RECU_%d_%s.pdf", d.BookingID, safeFilenamePart(d.FullName))
	return buf.Bytes(), filename, nil
}

func safe(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-")
	s = replacer.Replace(s)
	if s == "" {
		return "x"
	}
	return s
}
