package choices

import (
	"sort"
	"testing"
)

func TestTimezones(t *testing.T) {
	zones, err := Timezones()
	if err != nil {
		t.Fatalf("Timezones() error = %v", err)
	}
	if len(zones) < 300 {
		t.Fatalf("Timezones() returned %d zones, expected a full list", len(zones))
	}
	if !sort.StringsAreSorted(zones) {
		t.Fatal("Timezones() not sorted")
	}

	for _, want := range []string{"UTC", "America/New_York", "Europe/Madrid", "Asia/Tokyo"} {
		idx := sort.SearchStrings(zones, want)
		if idx >= len(zones) || zones[idx] != want {
			t.Fatalf("Timezones() missing %q", want)
		}
	}
}

func TestTimezonesReturnsCopy(t *testing.T) {
	first, err := Timezones()
	if err != nil {
		t.Fatalf("Timezones() error = %v", err)
	}
	first[0] = "mutated"

	second, err := Timezones()
	if err != nil {
		t.Fatalf("Timezones() error = %v", err)
	}
	if second[0] == "mutated" {
		t.Fatal("Timezones() shares its backing list with callers")
	}
}
