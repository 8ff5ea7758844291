package usecase

import (
	"testing"

	"github.com/specwise/backend/internal/domain"
)

func TestClassifyField(t *testing.T) {
	tests := []struct {
		label string
		want  FieldName
	}{
		{"operating system", FieldOS},
		{"  Operating System ", FieldOS},
		{"system on a chip", FieldChipset},
		{"chipset", FieldChipset},
		{"soc", FieldChipset},
		{"cpu", FieldCPU},
		{"processor", FieldCPU},
		{"gpu", FieldGPU},
		{"memory", FieldRAM},
		{"ram", FieldRAM},
		{"card slot", FieldCardSlot},
		{"expandable storage", FieldCardSlot},
		{"storage", FieldStorage},
		{"battery", FieldBatteryCapacity},
		{"charging", FieldCharging},
		{"display", FieldDisplayType},
		{"screen", FieldDisplayType},
		{"resolution", FieldDisplayResolution},
		{"refresh rate", FieldRefreshRate},
		{"protection", FieldDisplayProtection},
		{"glass", FieldDisplayProtection},
		{"rear camera", FieldMainCamera},
		{"main camera", FieldMainCamera},
		{"front camera", FieldSelfieCamera},
		{"selfie camera", FieldSelfieCamera},
		{"video", FieldVideo},
		{"wifi", FieldWLAN},
		{"wi-fi", FieldWLAN},
		{"bluetooth", FieldBluetooth},
		{"nfc", FieldNFC},
		{"usb", FieldUSB},
		{"positioning", FieldPositioning},
		{"gps", FieldPositioning},
		{"fingerprint sensor", FieldBiometrics},
		{"ip rating", FieldIPRating},
		{"brand", FieldBrand},
		{"manufacturer", FieldBrand},
		{"dimensions", FieldDimensions},
		{"colors", FieldNone},
		{"", FieldNone},
		{"socket", FieldNone},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := ClassifyField(tt.label); got != tt.want {
				t.Errorf("ClassifyField(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}

func TestClassifyField_RuleOrder(t *testing.T) {
	// Ambiguous labels are resolved by rule order, earlier rule wins.
	t.Run("camera rule beats video rule", func(t *testing.T) {
		if got := ClassifyField("main camera video"); got != FieldMainCamera {
			t.Errorf("ClassifyField(main camera video) = %q, want %q", got, FieldMainCamera)
		}
		if got := ClassifyField("front camera video"); got != FieldSelfieCamera {
			t.Errorf("ClassifyField(front camera video) = %q, want %q", got, FieldSelfieCamera)
		}
	})

	t.Run("card slot rule beats storage rule", func(t *testing.T) {
		if got := ClassifyField("expandable storage"); got != FieldCardSlot {
			t.Errorf("ClassifyField(expandable storage) = %q, want %q", got, FieldCardSlot)
		}
	})

	t.Run("screen protection goes to display type first", func(t *testing.T) {
		// "screen protection" matches the display rule before the
		// protection rule; only a bare protection/glass label maps there.
		if got := ClassifyField("screen protection"); got != FieldDisplayType {
			t.Errorf("ClassifyField(screen protection) = %q, want %q", got, FieldDisplayType)
		}
	})
}

func TestClassifyCategory(t *testing.T) {
	tests := []struct {
		label string
		want  domain.Category
	}{
		{"display", domain.CategoryDisplay},
		{"screen resolution", domain.CategoryDisplay},
		{"resolution", domain.CategoryDisplay},
		{"cpu", domain.CategoryHardware},
		{"chipset", domain.CategoryHardware},
		{"memory", domain.CategoryHardware},
		{"storage", domain.CategoryHardware},
		{"rear camera", domain.CategoryCamera},
		{"video", domain.CategoryCamera},
		{"battery", domain.CategoryBattery},
		{"fast charging", domain.CategoryBattery},
		{"network", domain.CategoryConnectivity},
		{"wifi", domain.CategoryConnectivity},
		{"usb", domain.CategoryConnectivity},
		{"colors", domain.CategoryOther},
		{"", domain.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := ClassifyCategory(tt.label); got != tt.want {
				t.Errorf("ClassifyCategory(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}

func TestClassify_TotalAndDeterministic(t *testing.T) {
	inputs := []string{
		"", " ", "display", "完全に未知のラベル", "a very long unknown label with words",
		"battery & charging", "…", "nfc", "IP Rating",
	}

	for _, label := range inputs {
		first := ClassifyField(label)
		second := ClassifyField(label)
		if first != second {
			t.Errorf("ClassifyField(%q) not deterministic: %q then %q", label, first, second)
		}

		catFirst := ClassifyCategory(label)
		catSecond := ClassifyCategory(label)
		if catFirst != catSecond {
			t.Errorf("ClassifyCategory(%q) not deterministic: %q then %q", label, catFirst, catSecond)
		}

		// Category classification is total: the result is always one of the
		// six fixed categories.
		valid := false
		for _, c := range domain.Categories {
			if catFirst == c {
				valid = true
			}
		}
		if !valid {
			t.Errorf("ClassifyCategory(%q) = %q, not a known category", label, catFirst)
		}
	}
}

func TestFieldCategory(t *testing.T) {
	tests := []struct {
		field FieldName
		want  domain.Category
	}{
		{FieldDisplayType, domain.CategoryDisplay},
		{FieldChipset, domain.CategoryHardware},
		{FieldMainCamera, domain.CategoryCamera},
		{FieldBatteryCapacity, domain.CategoryBattery},
		{FieldWLAN, domain.CategoryConnectivity},
		{FieldBrand, domain.CategoryOther},
		{FieldNone, domain.CategoryOther},
		{FieldName("unknown"), domain.CategoryOther},
	}

	for _, tt := range tests {
		if got := FieldCategory(tt.field); got != tt.want {
			t.Errorf("FieldCategory(%q) = %q, want %q", tt.field, got, tt.want)
		}
	}
}
