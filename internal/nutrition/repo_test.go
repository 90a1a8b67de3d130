package nutrition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogRecord_roundTrip(t *testing.T) {
	date := time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)
	l := Log{
		ID:        "n1",
		MealName:  "oatmeal",
		MealType:  "breakfast",
		Calories:  350,
		Protein:   12,
		Carbs:     60,
		Fats:      7,
		Date:      date,
		CreatedAt: date,
	}

	back, err := newLogRecord(l).toLog()
	require.NoError(t, err)
	assert.Equal(t, l, back)
}

func TestLogRecord_unparseableDate(t *testing.T) {
	rec := logRecord{
		ID:        "n1",
		MealName:  "oatmeal",
		Date:      "not-a-date",
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}

	_, err := rec.toLog()
	require.Error(t, err)
	// the record id must survive in the error, stored dates are never defaulted
	assert.Contains(t, err.Error(), "n1")
}

func TestLogRecord_unparseableCreatedAt(t *testing.T) {
	rec := logRecord{
		ID:        "n2",
		MealName:  "oatmeal",
		Date:      time.Now().UTC().Format(time.RFC3339Nano),
		CreatedAt: "???",
	}

	_, err := rec.toLog()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "n2")
}
