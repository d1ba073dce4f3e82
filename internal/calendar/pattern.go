package calendar

import (
	"fmt"
	"strings"
	"time"
)

// weekdayLetters maps pattern letters to weekdays, in calendar column order
var weekdayLetters = []struct {
	letter  byte
	weekday time.Weekday
}{
	{'M', time.Monday},
	{'T', time.Tuesday},
	{'W', time.Wednesday},
	{'R', time.Thursday},
	{'F', time.Friday},
	{'S', time.Saturday},
	{'U', time.Sunday},
}

// Pattern is a set of meeting weekdays written the registrar's way:
// M T W R F, plus S for Saturday and U for Sunday. "MW" and "TR" are typical.
type Pattern []time.Weekday

// ParsePattern parses letters such as "MWF" or "tr". The empty string is the
// empty pattern. Letters may repeat; the result is in Monday-first order.
func ParsePattern(s string) (Pattern, error) {
	s = strings.ToUpper(strings.TrimSpace(s))

	seen := make(map[time.Weekday]bool)
	for i := 0; i < len(s); i++ {
		found := false
		for _, wl := range weekdayLetters {
			if s[i] == wl.letter {
				seen[wl.weekday] = true
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("invalid weekday letter %q in pattern %q (use M T W R F S U)", s[i], s)
		}
	}

	p := make(Pattern, 0, len(seen))
	for _, wl := range weekdayLetters {
		if seen[wl.weekday] {
			p = append(p, wl.weekday)
		}
	}
	return p, nil
}

// MustPattern is ParsePattern for constant patterns; it panics on error
func MustPattern(s string) Pattern {
	p, err := ParsePattern(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Has reports whether the pattern includes d
func (p Pattern) Has(d time.Weekday) bool {
	for _, w := range p {
		if w == d {
			return true
		}
	}
	return false
}

// String returns the letter form, e.g. "MW"
func (p Pattern) String() string {
	var b strings.Builder
	for _, wl := range weekdayLetters {
		if p.Has(wl.weekday) {
			b.WriteByte(wl.letter)
		}
	}
	return b.String()
}
