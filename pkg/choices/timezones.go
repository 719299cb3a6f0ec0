package choices

import (
	"embed"
	"fmt"
	"sync"
)

//go:embed data/iana_timezones.txt
var timezoneFS embed.FS

const timezoneListPath = "data/iana_timezones.txt"

var (
	timezoneOnce sync.Once
	timezoneList []string
	timezoneErr  error
)

// Timezones returns the embedded IANA time zone identifiers, sorted. The list
// loads once; every call returns a fresh copy callers may mutate.
func Timezones() ([]string, error) {
	timezoneOnce.Do(func() {
		f, err := timezoneFS.Open(timezoneListPath)
		if err != nil {
			timezoneErr = fmt.Errorf("choices: open timezone list: %w", err)
			return
		}
		defer func() { _ = f.Close() }()

		zones, err := ReadList(f)
		if err != nil {
			timezoneErr = err
			return
		}
		timezoneList = zones
	})

	if timezoneErr != nil {
		return nil, timezoneErr
	}
	return append([]string{}, timezoneList...), nil
}
