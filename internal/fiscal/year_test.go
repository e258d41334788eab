package fiscal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSettings is an in-memory Settings implementation.
type fakeSettings struct {
	values map[string]string
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{values: make(map[string]string)}
}

func (f *fakeSettings) GetSetting(_ context.Context, key, def string) (string, error) {
	if v, ok := f.values[key]; ok {
		return v, nil
	}
	return def, nil
}

func (f *fakeSettings) SetSetting(_ context.Context, key, value string) error {
	f.values[key] = value
	return nil
}

func TestDefault_AprilBoundary(t *testing.T) {
	testCases := []struct {
		name string
		now  time.Time
		want string
	}{
		{"start of April", time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), "2024-25"},
		{"end of March", time.Date(2024, time.March, 31, 23, 59, 0, 0, time.UTC), "2023-24"},
		{"mid fiscal year", time.Date(2024, time.December, 15, 12, 0, 0, 0, time.UTC), "2024-25"},
		{"January after new year", time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC), "2024-25"},
		{"century rollover padding", time.Date(2099, time.June, 1, 0, 0, 0, 0, time.UTC), "2099-00"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Default(tc.now))
		})
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		fy    string
		valid bool
	}{
		{"2024-25", true},
		{"2099-00", true},
		{"2024-26", false}, // end part must be 25
		{"2024-24", false},
		{"24-25", false},
		{"2024/25", false},
		{"abcd-ef", false},
		{"2024-2e", false},
		{"", false},
	}

	for _, tc := range testCases {
		t.Run(tc.fy, func(t *testing.T) {
			err := Validate(tc.fy)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				var invalid *InvalidYearError
				require.ErrorAs(t, err, &invalid)
			}
		})
	}
}

func TestRegistry_AddTwice(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry(newFakeSettings())

	added, err := reg.Add(ctx, "2024-25")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = reg.Add(ctx, "2024-25")
	require.NoError(t, err)
	assert.False(t, added, "second add must report already-present")

	years, err := reg.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-25"}, years, "year must be present exactly once")
}

func TestRegistry_AddInvalid(t *testing.T) {
	ctx := context.Background()
	settings := newFakeSettings()
	reg := NewRegistry(settings)

	_, err := reg.Add(ctx, "2024-26")
	var invalid *InvalidYearError
	require.ErrorAs(t, err, &invalid)
	assert.Empty(t, settings.values, "failed validation must not persist anything")
}

func TestRegistry_ListSorted(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry(newFakeSettings())

	for _, fy := range []string{"2026-27", "2023-24", "2024-25"} {
		_, err := reg.Add(ctx, fy)
		require.NoError(t, err)
	}

	years, err := reg.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2023-24", "2024-25", "2026-27"}, years)
}

func TestRegistry_Seed(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)

	t.Run("empty registry", func(t *testing.T) {
		reg := NewRegistry(newFakeSettings())
		require.NoError(t, reg.Seed(ctx, now))

		years, err := reg.List(ctx)
		require.NoError(t, err)
		// Before April: current fiscal year plus the one starting this
		// calendar year.
		assert.Equal(t, []string{"2024-25", "2025-26"}, years)
	})

	t.Run("union with persisted years", func(t *testing.T) {
		settings := newFakeSettings()
		settings.values["financial_years"] = "2020-21,2024-25"

		reg := NewRegistry(settings)
		require.NoError(t, reg.Seed(ctx, now))

		years, err := reg.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"2020-21", "2024-25", "2025-26"}, years)
	})

	t.Run("idempotent", func(t *testing.T) {
		reg := NewRegistry(newFakeSettings())
		require.NoError(t, reg.Seed(ctx, now))
		require.NoError(t, reg.Seed(ctx, now))

		years, err := reg.List(ctx)
		require.NoError(t, err)
		assert.Len(t, years, 2)
	})
}
