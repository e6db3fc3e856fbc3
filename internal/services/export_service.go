package services

import (
	"bytes"
	"fmt"
	"time"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/repositories"
	"backend/internal/utils"

	"github.com/xuri/excelize/v2"
)

// ExportService renders the admin Excel downloads. Loaders are injectable
// so workbook layout can be tested without a database.
type ExportService struct {
	Trips     repositories.TripRepository
	Bookings  repositories.BookingRepository
	RequestID string

	// PageSize bounds each booking read while paging the full set; zero
	// means exportPageSize.
	PageSize int

	TripLoader    func() ([]models.Trip, error)
	BookingLoader func() ([]models.BookingWithTrip, error)
}

const exportPageSize = 1000

var tripHeaders = []string{
	"ID", "Origine", "Destination", "Date", "Heure",
	"Capacité", "Places disponibles", "Prix", "Statut", "Créé le",
}

var bookingHeaders = []string{
	"ID", "Référence", "Trajet", "Client", "Téléphone",
	"Statut", "Paiement", "Créé le",
}

func (s ExportService) loadTrips() ([]models.Trip, error) {
	if s.TripLoader != nil {
		return s.TripLoader()
	}
	return s.Trips.List(models.TripFilter{IncludeAll: true})
}

// loadBookings pages through the whole booking set; exports never truncate.
func (s ExportService) loadBookings() ([]models.BookingWithTrip, error) {
	if s.BookingLoader != nil {
		return s.BookingLoader()
	}

	size := s.PageSize
	if size <= 0 {
		size = exportPageSize
	}
	var out []models.BookingWithTrip
	for page := 1; ; page++ {
		rows, total, err := s.Bookings.ListAll(models.BookingFilter{}, page, size)
		if err != nil {
			return nil, err
		}
		out = append(out, rows...)
		if len(rows) == 0 || len(out) >= total {
			return out, nil
		}
	}
}

// ExportTrips returns the trips workbook and its download filename.
func (s ExportService) ExportTrips() ([]byte, string, error) {
	trips, err := s.loadTrips()
	if err != nil {
		return nil, "", wrapStorage(err, "failed to load trips")
	}
	f := excelize.NewFile()
	if err := writeTripSheet(f, "Trajets", trips, true); err != nil {
		return nil, "", domain.InternalError{Msg: "failed to build workbook", Err: err}
	}
	utils.LogEvent(s.RequestID, "export", "trips", fmt.Sprintf("rows=%d", len(trips)))
	return finish(f, "trajets")
}

// ExportBookings returns the bookings workbook and its download filename.
func (s ExportService) ExportBookings() ([]byte, string, error) {
	bookings, err := s.loadBookings()
	if err != nil {
		return nil, "", wrapStorage(err, "failed to load bookings")
	}
	f := excelize.NewFile()
	if err := writeBookingSheet(f, "Réservations", bookings, true); err != nil {
		return nil, "", domain.InternalError{Msg: "failed to build workbook", Err: err}
	}
	utils.LogEvent(s.RequestID, "export", "bookings", fmt.Sprintf("rows=%d", len(bookings)))
	return finish(f, "reservations")
}

// ExportReport returns the combined two-sheet workbook.
func (s ExportService) ExportReport() ([]byte, string, error) {
	trips, err := s.loadTrips()
	if err != nil {
		return nil, "", wrapStorage(err, "failed to load trips")
	}
	bookings, err := s.loadBookings()
	if err != nil {
		return nil, "", wrapStorage(err, "failed to load bookings")
	}

	f := excelize.NewFile()
	if err := writeTripSheet(f, "Trajets", trips, true); err != nil {
		return nil, "", domain.InternalError{Msg: "failed to build workbook", Err: err}
	}
	if err := writeBookingSheet(f, "Réservations", bookings, false); err != nil {
		return nil, "", domain.InternalError{Msg: "failed to build workbook", Err: err}
	}
	utils.LogEvent(s.RequestID, "export", "report",
		fmt.Sprintf("trips=%d bookings=%d", len(trips), len(bookings)))
	return finish(f, "rapport")
}

func writeTripSheet(f *excelize.File, name string, trips []models.Trip, first bool) error {
	if err := prepareSheet(f, name, first, tripHeaders); err != nil {
		return err
	}
	for i, t := range trips {
		row := []any{
			t.ID, t.Origin, t.Destination, t.DepartureDate, t.DepartureTime,
			t.Capacity, t.AvailableSeats, utils.FormatCFA(t.Price),
			t.EffectiveStatus(), t.CreatedAt.Format("2006-01-02 15:04"),
		}
		if err := writeRow(f, name, 5+i, row); err != nil {
			return err
		}
	}
	return nil
}

func writeBookingSheet(f *excelize.File, name string, bookings []models.BookingWithTrip, first bool) error {
	if err := prepareSheet(f, name, first, bookingHeaders); err != nil {
		return err
	}
	for i, b := range bookings {
		route := ""
		if b.Trip != nil {
			route = b.Trip.Origin + " - " + b.Trip.Destination
		}
		row := []any{
			b.ID, b.Reference, route, b.FullName, b.Phone,
			b.Status, b.PaymentStatus, b.CreatedAt.Format("2006-01-02 15:04"),
		}
		if err := writeRow(f, name, 5+i, row); err != nil {
			return err
		}
	}
	return nil
}

// prepareSheet lays out the title row, export date and bold header row the
// way the legacy exports did: data starts at row 5.
func prepareSheet(f *excelize.File, name string, first bool, headers []string) error {
	if first {
		if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
			return err
		}
	} else {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.MergeCell(name, "A1", last); err != nil {
		return err
	}
	if err := f.SetCellValue(name, "A1", name); err != nil {
		return err
	}
	if err := f.SetCellValue(name, "A2",
		"Exporté le "+time.Now().Format("02/01/2006 15:04")); err != nil {
		return err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(name, "A1", "A1", titleStyle); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
	})
	if err != nil {
		return err
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 4)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(name, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(name, cell, cell, headerStyle); err != nil {
			return err
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(name, col, col, 20); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func finish(f *excelize.File, base string) ([]byte, string, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", domain.InternalError{Msg: "failed to write workbook", Err: err}
	}
	filename := fmt.Sprintf("%s_%s.xlsx", base, time.Now().Format("20060102"))
	return buf.Bytes(), filename, nil
}
