package voucher

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"velour/booking"
	"velour/catalog"
	"velour/db"
	"velour/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

func signingKey() []byte {
	key := os.Getenv("VOUCHER_SECRET")
	if key == "" {
		key = "velour_voucher_secret"
	}
	return []byte(key)
}

// QRPayload builds the signed payload dispatch scans at pickup:
// bookingID|createdAt|signature.
func QRPayload(bookingID string, createdAt int64) string {
	data := fmt.Sprintf("%s|%d", bookingID, createdAt)
	h := hmac.New(sha256.New, signingKey())
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("%s|%s", data, sig)
}

// VerifyPayload checks a scanned payload's signature.
func VerifyPayload(payload string) (string, bool) {
	parts := strings.Split(payload, "|")
	if len(parts) != 3 {
		return "", false
	}
	createdAt, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", false
	}
	expected := QRPayload(parts[0], createdAt)
	if hmac.Equal([]byte(expected), []byte(payload)) {
		return parts[0], true
	}
	return "", false
}

// PrintVoucher renders the PDF voucher for a booking, QR included, for the
// customer to hand to dispatch.
func PrintVoucher(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	b, err := booking.GetBooking(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotConfigured) {
			utils.RespondWithError(w, http.StatusServiceUnavailable, "Booking storage is not configured")
			return
		}
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return
	}

	qrPNG, err := qrcode.Encode(QRPayload(b.ID, b.CreatedAt), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	vehicleName := b.VehicleID
	if v := catalog.Lookup(ctx, b.VehicleID); v != nil {
		vehicleName = v.Name
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Chauffeur Booking Voucher")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Booking: %s", b.ID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Passenger: %s", b.Name))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Vehicle: %s", vehicleName))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Pickup: %s at %s, %s", b.ServiceDate, b.PickupTime, b.PickupAddress))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Dropoff: %s", b.DropoffAddress))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Estimated fare: %s (%s)", utils.FormatUSD(b.EstimatedFare), b.ServiceType))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=voucher-"+b.ID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
