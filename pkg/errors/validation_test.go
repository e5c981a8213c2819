package errors

import (
	"testing"
)

func TestValidateDayKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "2018-03-14", false},
		{"valid leap day", "2020-02-29", false},
		{"valid year start", "2018-01-01", false},
		{"valid year end", "2018-12-31", false},

		{"empty", "", true},
		{"slashes", "2018/03/14", true},
		{"no padding", "2018-3-4", true},
		{"timestamp", "2018-03-14T00:00:00Z", true},
		{"month out of range", "2018-13-01", true},
		{"day out of range", "2018-02-30", true},
		{"non-leap feb 29", "2019-02-29", true},
		{"garbage", "not-a-date", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDayKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDayKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateHexColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid short", "#fff", false},
		{"valid long", "#61cdbb", false},
		{"valid uppercase", "#61CDBB", false},

		{"empty", "", true},
		{"no hash", "61cdbb", true},
		{"wrong length", "#61cd", true},
		{"non-hex", "#zzzzzz", true},
		{"named color", "red", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHexColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHexColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateChartID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid uuid", "7b1c7a30-9a2f-4f7e-8f3a-2d1b6c4e5a9d", false},

		{"empty", "", true},
		{"uppercase", "7B1C7A30-9A2F-4F7E-8F3A-2D1B6C4E5A9D", true},
		{"no dashes", "7b1c7a309a2f4f7e8f3a2d1b6c4e5a9d", true},
		{"too short", "7b1c7a30-9a2f", true},
		{"path traversal", "../../../etc/passwd", true},
		{"control char", "7b1c7a30\x00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChartID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateChartID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
