package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDisplayDate(t *testing.T) {
	today := time.Date(2019, time.March, 23, 15, 4, 0, 0, time.UTC)

	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{"today", date(2019, time.March, 23), "Today"},
		{"today with clock time", time.Date(2019, time.March, 23, 23, 59, 0, 0, time.UTC), "Today"},
		{"yesterday", date(2019, time.March, 22), "Yesterday"},
		{"older", date(2019, time.March, 21), "March 21, 2019"},
		{"across year", date(2018, time.December, 31), "December 31, 2018"},
		{"future", date(2019, time.March, 24), "March 24, 2019"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayDate(tt.date, today); got != tt.want {
				t.Errorf("DisplayDate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestYesterdayAcrossMonth(t *testing.T) {
	if got := DisplayDate(date(2019, time.February, 28), date(2019, time.March, 1)); got != "Yesterday" {
		t.Errorf("DisplayDate() = %q, want Yesterday", got)
	}
}

func TestHeading(t *testing.T) {
	today := date(2019, time.March, 23)
	if got := Heading(today, today); got != "I am grateful for" {
		t.Errorf("Heading(today) = %q", got)
	}
	if got := Heading(date(2019, time.March, 22), today); got != "I was grateful for" {
		t.Errorf("Heading(yesterday) = %q", got)
	}
}

func TestParseDay(t *testing.T) {
	today := time.Date(2019, time.March, 23, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"", "2019-03-23", false},
		{"today", "2019-03-23", false},
		{"Yesterday", "2019-03-22", false},
		{"2019-03-01", "2019-03-01", false},
		{" 2019-03-01 ", "2019-03-01", false},
		{"03/01/2019", "", true},
		{"2019-02-30", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDay(tt.input, today)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDay(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && FormatDay(got) != tt.want {
				t.Errorf("ParseDay(%q) = %s, want %s", tt.input, FormatDay(got), tt.want)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := ExpandPath("~/.config/presently/presently.db")
	if err != nil {
		t.Fatalf("ExpandPath() error = %v", err)
	}
	if want := filepath.Join(home, ".config/presently/presently.db"); got != want {
		t.Errorf("ExpandPath() = %q, want %q", got, want)
	}

	if got, _ := ExpandPath("/abs/path.db"); got != "/abs/path.db" {
		t.Errorf("ExpandPath() changed an absolute path: %q", got)
	}
}
