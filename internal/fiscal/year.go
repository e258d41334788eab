// Package fiscal owns financial-year tokens and the registry of valid years.
//
// A financial year is a fixed-shape string YYYY-YY (e.g. "2024-25") whose
// second component is the last two digits of the first year plus one. The
// fiscal year starts in April; this boundary is a fixed business rule, not
// configuration.
package fiscal

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// startMonth is the first month of the fiscal year.
const startMonth = time.April

// settingKey is where the registry persists its year set, as a comma-joined
// sorted string.
const settingKey = "financial_years"

// InvalidYearError reports a financial-year token that fails shape or
// arithmetic validation. Nothing is mutated when it is returned.
type InvalidYearError struct {
	Value  string
	Reason string
}

func (e *InvalidYearError) Error() string {
	return fmt.Sprintf("invalid financial year %q: %s", e.Value, e.Reason)
}

// Default derives the financial year for the given instant: from April
// onwards the year that started in the current calendar year, before April
// the one that started in the previous.
func Default(now time.Time) string {
	year := now.Year()
	if now.Month() >= startMonth {
		return format(year)
	}
	return format(year - 1)
}

// format renders the year starting in startYear as YYYY-YY.
func format(startYear int) string {
	return fmt.Sprintf("%04d-%02d", startYear, (startYear+1)%100)
}

// Validate checks the YYYY-YY shape and the arithmetic relation between the
// two halves: the end part must be (start+1) mod 100, zero-padded.
func Validate(fy string) error {
	if len(fy) != 7 || fy[4] != '-' {
		return &InvalidYearError{Value: fy, Reason: "expected YYYY-YY"}
	}

	start, err := strconv.Atoi(fy[:4])
	if err != nil {
		return &InvalidYearError{Value: fy, Reason: "start year is not a number"}
	}
	end, err := strconv.Atoi(fy[5:])
	if err != nil {
		return &InvalidYearError{Value: fy, Reason: "end year is not a number"}
	}

	if end != (start+1)%100 {
		return &InvalidYearError{
			Value:  fy,
			Reason: fmt.Sprintf("end part must be %02d", (start+1)%100),
		}
	}
	return nil
}

// Settings is the slice of the settings store the registry needs.
type Settings interface {
	GetSetting(ctx context.Context, key, def string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

// Registry holds the deduplicated set of valid financial years, persisted as
// a single delimited setting. The zero value is unusable; use NewRegistry.
type Registry struct {
	settings Settings
}

func NewRegistry(settings Settings) *Registry {
	return &Registry{settings: settings}
}

// List returns the registered years, lexicographically sorted. Given the
// fixed-width token shape that is also chronological order.
func (r *Registry) List(ctx context.Context) ([]string, error) {
	raw, err := r.settings.GetSetting(ctx, settingKey, "")
	if err != nil {
		return nil, fmt.Errorf("list financial years: %w", err)
	}
	return parseSet(raw), nil
}

// Add validates fy and inserts it into the registry. Returns false without
// mutation when the year is already present.
func (r *Registry) Add(ctx context.Context, fy string) (bool, error) {
	fy = strings.TrimSpace(fy)
	if err := Validate(fy); err != nil {
		return false, err
	}

	years, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	for _, existing := range years {
		if existing == fy {
			return false, nil
		}
	}

	years = append(years, fy)
	if err := r.save(ctx, years); err != nil {
		return false, err
	}
	return true, nil
}

// Seed ensures the registry contains the current and next fiscal years,
// merged with whatever is already persisted. Union, never overwrite; call
// once at startup.
func (r *Registry) Seed(ctx context.Context, now time.Time) error {
	years, err := r.List(ctx)
	if err != nil {
		return err
	}

	years = append(years, Default(now), format(now.Year()))
	return r.save(ctx, years)
}

func (r *Registry) save(ctx context.Context, years []string) error {
	years = dedupe(years)
	sort.Strings(years)
	if err := r.settings.SetSetting(ctx, settingKey, strings.Join(years, ",")); err != nil {
		return fmt.Errorf("save financial years: %w", err)
	}
	return nil
}

func parseSet(raw string) []string {
	var years []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			years = append(years, part)
		}
	}
	years = dedupe(years)
	sort.Strings(years)
	return years
}

func dedupe(years []string) []string {
	seen := make(map[string]bool, len(years))
	out := years[:0]
	for _, fy := range years {
		if !seen[fy] {
			seen[fy] = true
			out = append(out, fy)
		}
	}
	return out
}
