package content

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"velour/catalog"
	"velour/models"
	"velour/utils"
)

// VersionDisplayLimit caps how many versions the admin list returns. Older
// versions stay in the collection; the cap is display-only.
const VersionDisplayLimit = 12

// EntryError names the offending fleet entry so the admin UI can point at it.
type EntryError struct {
	EntryID string `json:"entryId"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e EntryError) Error() string {
	return fmt.Sprintf("%s/%s: %s", e.EntryID, e.Field, e.Message)
}

func validImageURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ValidateFleet checks every fleet entry of a draft before it may be saved:
// price must be positive and the image reference a syntactically valid
// http/https URL. failedImages carries entry ids whose image failed to load
// client-side; those are flagged too. Save is all-or-nothing, so any result
// here blocks the whole write.
func ValidateFleet(fleet []models.FleetEntry, failedImages []string) []EntryError {
	failed := make(map[string]bool, len(failedImages))
	for _, id := range failedImages {
		failed[id] = true
	}

	var errs []EntryError
	for _, e := range fleet {
		if e.Price <= 0 {
			errs = append(errs, EntryError{EntryID: e.ID, Field: "price", Message: "Price must be greater than 0"})
		}
		if !validImageURL(e.Image) && !strings.HasPrefix(e.Image, "/static/") {
			errs = append(errs, EntryError{EntryID: e.ID, Field: "image", Message: "Image must be an http(s) URL"})
		} else if failed[e.ID] {
			errs = append(errs, EntryError{EntryID: e.ID, Field: "image", Message: "Image failed to load"})
		}
	}
	return errs
}

// NewVersion builds the immutable snapshot appended alongside every content
// write. Restores carry a reference to the version they restored from.
func NewVersion(snapshot models.SiteContent, action, restoredFrom string) models.SiteContentVersion {
	return models.SiteContentVersion{
		ID:           utils.GetUUID(),
		Content:      snapshot,
		Action:       action,
		RestoredFrom: restoredFrom,
		Actor:        "admin", // single shared PIN, no per-user identity
		CreatedAt:    time.Now().Unix(),
	}
}

// DefaultContent is served before any admin save exists.
func DefaultContent() models.SiteContent {
	fleet := catalog.DefaultFleet()
	entries := make([]models.FleetEntry, 0, len(fleet))
	for _, v := range fleet {
		entries = append(entries, models.FleetEntry{
			ID:      v.ID,
			Name:    v.Name,
			Class:   v.Class,
			Seats:   v.Seats,
			Luggage: v.Luggage,
			Image:   v.Image,
			Price:   v.BaseFare,
		})
	}
	return models.SiteContent{
		Hero: models.HeroCopy{
			Title:    "Arrive in Style",
			Subtitle: "Private chauffeur service for airports, events and everything between.",
			CTALabel: "Book Your Ride",
		},
		Booking: models.BookingCopy{
			Title:    "Reserve Your Chauffeur",
			Subtitle: "Three quick steps and your driver is scheduled.",
		},
		Fleet: entries,
	}
}
