package content

import (
	"testing"

	"velour/models"
)

func validEntry(id string) models.FleetEntry {
	return models.FleetEntry{
		ID:    id,
		Name:  "Executive Sedan",
		Class: "Sedan",
		Image: "https://cdn.example.com/fleet/" + id + ".jpg",
		Price: 95,
	}
}

func hasEntryError(errs []EntryError, entryID, field string) bool {
	for _, e := range errs {
		if e.EntryID == entryID && e.Field == field {
			return true
		}
	}
	return false
}

func TestValidateFleetAcceptsCleanDraft(t *testing.T) {
	fleet := []models.FleetEntry{validEntry("a"), validEntry("b")}
	if errs := ValidateFleet(fleet, nil); len(errs) > 0 {
		t.Fatalf("clean draft rejected: %v", errs)
	}
}

func TestValidateFleetBlocksZeroAndNegativePrice(t *testing.T) {
	zero := validEntry("zero")
	zero.Price = 0
	neg := validEntry("neg")
	neg.Price = -5

	errs := ValidateFleet([]models.FleetEntry{validEntry("ok"), zero, neg}, nil)
	if !hasEntryError(errs, "zero", "price") || !hasEntryError(errs, "neg", "price") {
		t.Fatalf("price violations not named: %v", errs)
	}
	if hasEntryError(errs, "ok", "price") {
		t.Fatalf("valid entry flagged: %v", errs)
	}
}

func TestValidateFleetBlocksMalformedImageURL(t *testing.T) {
	bad := []string{"ftp://cdn.example.com/x.jpg", "not a url", "https://", "javascript:alert(1)"}
	for _, img := range bad {
		e := validEntry("img")
		e.Image = img
		if errs := ValidateFleet([]models.FleetEntry{e}, nil); !hasEntryError(errs, "img", "image") {
			t.Errorf("image %q accepted", img)
		}
	}

	// Local static references from the upload endpoint are allowed.
	e := validEntry("local")
	e.Image = "/static/fleetpic/local.jpg"
	if errs := ValidateFleet([]models.FleetEntry{e}, nil); len(errs) > 0 {
		t.Errorf("static image rejected: %v", errs)
	}
}

func TestValidateFleetFlagsPriorLoadFailures(t *testing.T) {
	e := validEntry("broken")
	errs := ValidateFleet([]models.FleetEntry{e}, []string{"broken"})
	if !hasEntryError(errs, "broken", "image") {
		t.Fatalf("prior load failure not flagged: %v", errs)
	}
}

func TestNewVersionSaveAndRestoreShape(t *testing.T) {
	snapshot := DefaultContent()

	saved := NewVersion(snapshot, models.VersionActionSave, "")
	if saved.Action != models.VersionActionSave || saved.RestoredFrom != "" {
		t.Fatalf("save version malformed: %+v", saved)
	}
	if saved.ID == "" || saved.CreatedAt == 0 {
		t.Fatalf("save version missing id/timestamp: %+v", saved)
	}

	restored := NewVersion(saved.Content, models.VersionActionRestore, saved.ID)
	if restored.Action != models.VersionActionRestore {
		t.Fatalf("restore action = %q", restored.Action)
	}
	if restored.RestoredFrom != saved.ID {
		t.Fatalf("restore does not reference source: %+v", restored)
	}
	if restored.ID == saved.ID {
		t.Fatal("restore reused the source version id")
	}
	if restored.Content.Hero != snapshot.Hero || len(restored.Content.Fleet) != len(snapshot.Fleet) {
		t.Fatal("restore snapshot does not round-trip the saved content")
	}
}

func TestDefaultContentCarriesFleet(t *testing.T) {
	doc := DefaultContent()
	if len(doc.Fleet) == 0 {
		t.Fatal("default content has no fleet")
	}
	if errs := ValidateFleet(doc.Fleet, nil); len(errs) > 0 {
		t.Fatalf("default fleet fails its own validation: %v", errs)
	}
}
