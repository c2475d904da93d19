package engine

import (
	"testing"
	"time"

	"github.com/dorjilhenduptenzin2892-jpg/Bank-of-Bhutan-Reporting-sub000/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func txnAt(year int, month time.Month, day int) entity.Transaction {
	return entity.Transaction{
		Timestamp:    time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		Channel:      entity.ChannelPOS,
		ResponseCode: "00",
	}
}

func TestParseGranularity(t *testing.T) {
	g, err := ParseGranularity("")
	require.NoError(t, err)
	assert.Equal(t, GranularityMonthly, g)

	g, err = ParseGranularity(" WEEKLY ")
	require.NoError(t, err)
	assert.Equal(t, GranularityWeekly, g)

	_, err = ParseGranularity("fortnightly")
	assert.Error(t, err)
}

func TestPeriodKeyFor(t *testing.T) {
	txn := txnAt(2024, time.May, 17)

	assert.Equal(t, "2024-05-17", PeriodKeyFor(txn, GranularityDaily))
	assert.Equal(t, "2024-W20", PeriodKeyFor(txn, GranularityWeekly))
	assert.Equal(t, "2024-05", PeriodKeyFor(txn, GranularityMonthly))
	assert.Equal(t, "2024-Q2", PeriodKeyFor(txn, GranularityQuarterly))
	assert.Equal(t, "2024", PeriodKeyFor(txn, GranularityYearly))
	// custom agrupa pela data completa
	assert.Equal(t, "2024-05-17", PeriodKeyFor(txn, GranularityCustom))
}

func TestPeriodKeyISOWeekYearBoundary(t *testing.T) {
	// 2027-01-01 é sexta-feira: a quinta-feira da semana cai em 2026, então
	// a semana pertence ao ano ISO anterior.
	txn := txnAt(2027, time.January, 1)
	assert.Equal(t, "2026-W53", PeriodKeyFor(txn, GranularityWeekly))

	// 2024-12-30 é segunda-feira da semana cuja quinta cai em 2025-01-02
	txn = txnAt(2024, time.December, 30)
	assert.Equal(t, "2025-W01", PeriodKeyFor(txn, GranularityWeekly))
}

func TestAssignYearFilterExcludes(t *testing.T) {
	txns := []entity.Transaction{
		txnAt(2023, time.June, 5),
		txnAt(2024, time.June, 5),
		txnAt(2024, time.July, 9),
	}

	buckets := Assign(txns, GranularityMonthly, 2024)
	require.Len(t, buckets, 2)
	assert.Len(t, buckets["2024-06"], 1)
	assert.Len(t, buckets["2024-07"], 1)
	assert.NotContains(t, buckets, "2023-06")

	// sem filtro de ano, tudo entra
	buckets = Assign(txns, GranularityMonthly, 0)
	assert.Len(t, buckets, 3)
}

func TestSortPeriodKeysCalendarOrder(t *testing.T) {
	keys := []string{"2024-Q4", "2023-Q1", "2024-Q1"}
	SortPeriodKeys(keys)
	assert.Equal(t, []string{"2023-Q1", "2024-Q1", "2024-Q4"}, keys)

	keys = []string{"2024-03-02", "2024-03-01", "2023-12-31"}
	SortPeriodKeys(keys)
	assert.Equal(t, []string{"2023-12-31", "2024-03-01", "2024-03-02"}, keys)

	keys = []string{"2025-W02", "2024-W53", "2025-W01"}
	SortPeriodKeys(keys)
	assert.Equal(t, []string{"2024-W53", "2025-W01", "2025-W02"}, keys)

	keys = []string{"2024", "2022", "2023"}
	SortPeriodKeys(keys)
	assert.Equal(t, []string{"2022", "2023", "2024"}, keys)
}

func TestSortedBucketKeys(t *testing.T) {
	buckets := map[string][]entity.Transaction{
		"2024-02": {txnAt(2024, time.February, 1)},
		"2023-11": {txnAt(2023, time.November, 1)},
		"2024-01": {txnAt(2024, time.January, 1)},
	}
	assert.Equal(t, []string{"2023-11", "2024-01", "2024-02"}, SortedBucketKeys(buckets))
}
