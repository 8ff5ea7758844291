package domain

import "time"

// Category is one of the six coarse groupings a spec row can belong to.
type Category string

const (
	CategoryDisplay      Category = "display"
	CategoryHardware     Category = "hardware"
	CategoryCamera       Category = "camera"
	CategoryBattery      Category = "battery"
	CategoryConnectivity Category = "connectivity"
	CategoryOther        Category = "other"
)

// Categories lists all categories in rendering order.
var Categories = []Category{
	CategoryDisplay,
	CategoryHardware,
	CategoryCamera,
	CategoryBattery,
	CategoryConnectivity,
	CategoryOther,
}

// PhoneSpec is the canonical parsed record for one device.
//
// Every attribute field is optional. An absent field is the empty string and
// is never serialized; the parser never assigns a value that is empty after
// trimming, so a non-empty field always holds trimmed text.
type PhoneSpec struct {
	Name string `json:"name"`

	DisplayType       string `json:"displayType,omitempty"`
	DisplaySize       string `json:"displaySize,omitempty"`
	DisplayResolution string `json:"displayResolution,omitempty"`
	RefreshRate       string `json:"refreshRate,omitempty"`
	DisplayProtection string `json:"displayProtection,omitempty"`

	OS       string `json:"os,omitempty"`
	Chipset  string `json:"chipset,omitempty"`
	CPU      string `json:"cpu,omitempty"`
	GPU      string `json:"gpu,omitempty"`
	RAM      string `json:"ram,omitempty"`
	Storage  string `json:"storage,omitempty"`
	CardSlot string `json:"cardSlot,omitempty"`

	Biometrics string `json:"biometrics,omitempty"`
	IPRating   string `json:"ipRating,omitempty"`

	MainCamera   string `json:"mainCamera,omitempty"`
	MainVideo    string `json:"mainVideo,omitempty"`
	SelfieCamera string `json:"selfieCamera,omitempty"`
	SelfieVideo  string `json:"selfieVideo,omitempty"`

	BatteryCapacity string `json:"batteryCapacity,omitempty"`
	Charging        string `json:"charging,omitempty"`

	WLAN        string `json:"wlan,omitempty"`
	Bluetooth   string `json:"bluetooth,omitempty"`
	Positioning string `json:"positioning,omitempty"`
	NFC         string `json:"nfc,omitempty"`
	USB         string `json:"usb,omitempty"`

	OSUpdates string `json:"osUpdates,omitempty"`
	Brand     string `json:"brand,omitempty"`

	// Rows holds the raw label/value pairs grouped by category, exactly as
	// they appeared in the source table. Used for bulk rendering and the
	// coarse comparison path.
	Rows map[Category]map[string]string `json:"rows,omitempty"`

	// Source is "wiki" or "cache"; CachedAt is set when served from cache.
	Source   string    `json:"source,omitempty"`
	CachedAt time.Time `json:"cachedAt,omitempty"`
}

// DerivedMetrics is the numeric projection of a PhoneSpec used for
// comparison. A nil field means the metric could not be extracted.
type DerivedMetrics struct {
	Name string `json:"name"`

	SizeInches *float64 `json:"sizeInches,omitempty"`
	RefreshHz  *float64 `json:"refreshHz,omitempty"`
	RAMGB      *float64 `json:"ramGB,omitempty"`
	StorageGB  *float64 `json:"storageGB,omitempty"`
	BatteryMAh *float64 `json:"batteryMAh,omitempty"`

	// Carried through for display alongside the numeric rows.
	Chipset string `json:"chipset,omitempty"`
	CPU     string `json:"cpu,omitempty"`
	OS      string `json:"os,omitempty"`
}

// Candidate is one search result from the encyclopedia API.
type Candidate struct {
	PageID  int    `json:"pageId,omitempty"`
	Title   string `json:"title"`
	Snippet string `json:"snippet,omitempty"`
}
