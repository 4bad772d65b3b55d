package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money is an amount in minor units (hundredths).
type Money int64

// MoneyFromFloat converts a major-unit amount, rounding half away from zero.
func MoneyFromFloat(f float64) Money {
	return Money(math.Round(f * 100))
}

// ParseMoney parses a decimal string with at most two fractional digits.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("domain.ParseMoney: empty amount: %w", ErrInvalid)
	}

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac, _ := strings.Cut(s, ".")
	if len(frac) > 2 {
		return 0, fmt.Errorf("domain.ParseMoney(%q): more than two decimal places: %w", s, ErrInvalid)
	}
	for len(frac) < 2 {
		frac += "0"
	}
	if whole == "" {
		whole = "0"
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("domain.ParseMoney(%q): %w", s, errors.Join(ErrInvalid, err))
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("domain.ParseMoney(%q): %w", s, errors.Join(ErrInvalid, err))
	}

	m := Money(w*100 + f)
	if neg {
		m = -m
	}
	return m, nil
}

// Float returns the amount in major units.
func (m Money) Float() float64 {
	return float64(m) / 100
}

func (m Money) String() string {
	return formatHundredths(int64(m))
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	v, err := ParseMoney(strings.Trim(string(b), `"`))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Percent is a percentage in hundredths of a percent; 10000 is 100%.
type Percent int64

// PercentWhole is one hundred percent.
const PercentWhole Percent = 10000

func (p Percent) Float() float64 {
	return float64(p) / 100
}

func (p Percent) String() string {
	return formatHundredths(int64(p))
}

func (p Percent) MarshalJSON() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Percent) UnmarshalJSON(b []byte) error {
	v, err := ParseMoney(strings.Trim(string(b), `"`))
	if err != nil {
		return err
	}
	*p = Percent(v)
	return nil
}

func formatHundredths(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
