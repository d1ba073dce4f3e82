package calendar

import (
	"testing"
	"time"
)

func TestParsePattern(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		days    int
		wantErr bool
	}{
		{"MW", "MW", 2, false},
		{"tr", "TR", 2, false},
		{"FWM", "MWF", 3, false},
		{"MMW", "MW", 2, false},
		{"MTWRFSU", "MTWRFSU", 7, false},
		{"", "", 0, false},
		{"MX", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p, err := ParsePattern(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePattern(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if p.String() != tt.want || len(p) != tt.days {
				t.Errorf("ParsePattern(%q) = %q (%d days), want %q (%d days)", tt.in, p, len(p), tt.want, tt.days)
			}
		})
	}
}

func TestPattern_Has(t *testing.T) {
	p := MustPattern("TR")
	if !p.Has(time.Thursday) {
		t.Error("TR should include Thursday")
	}
	if p.Has(time.Wednesday) {
		t.Error("TR should not include Wednesday")
	}
	if p[0] != time.Tuesday {
		t.Errorf("first weekday = %v, want Tuesday", p[0])
	}
}
