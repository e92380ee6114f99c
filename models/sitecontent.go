package models

// SiteContent is the singleton editable-copy document. It is overwritten on
// every admin save; history lives in the contentversions collection.
type SiteContent struct {
	Hero    HeroCopy     `json:"hero" bson:"hero"`
	Booking BookingCopy  `json:"booking" bson:"booking"`
	Fleet   []FleetEntry `json:"fleet" bson:"fleet"`
}

type HeroCopy struct {
	Title    string `json:"title" bson:"title"`
	Subtitle string `json:"subtitle" bson:"subtitle"`
	CTALabel string `json:"ctaLabel" bson:"ctaLabel"`
}

type BookingCopy struct {
	Title    string `json:"title" bson:"title"`
	Subtitle string `json:"subtitle" bson:"subtitle"`
}

// FleetEntry mirrors VehicleOption but carries the admin-editable price.
type FleetEntry struct {
	ID      string  `json:"id" bson:"id"`
	Name    string  `json:"name" bson:"name"`
	Class   string  `json:"class" bson:"class"`
	Seats   string  `json:"seats" bson:"seats"`
	Luggage string  `json:"luggage" bson:"luggage"`
	Image   string  `json:"image" bson:"image"`
	Price   float64 `json:"price" bson:"price"`
}

const (
	VersionActionSave    = "save"
	VersionActionRestore = "restore"
)

// SiteContentVersion is an immutable snapshot appended on every save or
// restore. Restores reference the version they restored from; history is
// never mutated.
type SiteContentVersion struct {
	ID           string      `json:"id" bson:"id"`
	Content      SiteContent `json:"content" bson:"content"`
	Action       string      `json:"action" bson:"action"`
	RestoredFrom string      `json:"restoredFrom,omitempty" bson:"restoredFrom,omitempty"`
	Actor        string      `json:"actor" bson:"actor"`
	CreatedAt    int64       `json:"createdAt" bson:"createdAt"`
}
