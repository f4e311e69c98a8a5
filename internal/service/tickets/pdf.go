package tickets

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	"github.com/m04kA/Kelale-BookingPortal/internal/domain"
)

const qrImageName = "qr"

// RenderPDF печатная версия билета: маршрут, отправление, место, пассажир, оплата и QR-код
func RenderPDF(t *domain.Ticket) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Kelale Ticket", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "KELALE BUS TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking ID     : %s", t.BookingID),
		fmt.Sprintf("Route          : %s -> %s", orDash(t.Origin), orDash(t.Destination)),
		fmt.Sprintf("Departure      : %s", departure(t)),
		fmt.Sprintf("Seat           : %d", t.Seat),
		fmt.Sprintf("Passenger      : %s", orDash(t.PassengerName)),
		fmt.Sprintf("Price          : %.2f ETB", t.TotalPrice),
		fmt.Sprintf("Payment method : %s", orDash(string(t.PaymentMethod))),
		fmt.Sprintf("Status         : %s", t.Status.Label()),
		fmt.Sprintf("Payment code   : %s", orDash(t.PaymentCode)),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	if img, imageType, ok := decodeImageDataURI(t.QR); ok {
		opts := gofpdf.ImageOptions{ImageType: imageType}
		pdf.RegisterImageOptionsReader(qrImageName, opts, bytes.NewReader(img))
		if pdf.Ok() {
			pdf.Ln(4)
			pdf.ImageOptions(qrImageName, pdf.GetX(), pdf.GetY(), 50, 50, true, opts, 0, "")
		} else {
			// битая картинка не должна ломать весь билет
			pdf.ClearError()
		}
	}

	if t.Status == domain.StatusPending {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, "Payment is not completed yet. Pay using the payment code above; the ticket is valid once the booking is confirmed.", "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Filename имя файла PDF билета
func Filename(t *domain.Ticket) string {
	return fmt.Sprintf("TICKET_%s_seat%d.pdf", safeFilenamePart(t.BookingID), t.Seat)
}

// decodeImageDataURI разбирает data:image/png;base64,... Ссылки (http...) не поддерживаются
func decodeImageDataURI(uri string) ([]byte, string, bool) {
	meta, data, found := strings.Cut(uri, ",")
	if !found || !strings.HasPrefix(meta, "data:image/") || !strings.HasSuffix(meta, ";base64") {
		return nil, "", false
	}

	var imageType string
	switch strings.TrimSuffix(strings.TrimPrefix(meta, "data:image/"), ";base64") {
	case "png":
		imageType = "PNG"
	case "jpeg", "jpg":
		imageType = "JPG"
	default:
		return nil, "", false
	}

	img, err := base64.StdEncoding.DecodeString(data)
	if err != nil || len(img) == 0 {
		return nil, "", false
	}
	return img, imageType, true
}

func departure(t *domain.Ticket) string {
	if t.DepartureTime == nil {
		return "-"
	}
	return t.DepartureTime.Format(domain.DateTimeFormat)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func safeFilenamePart(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, s)
}
