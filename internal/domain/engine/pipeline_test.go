package engine

import (
	"fmt"
	"testing"

	"github.com/dorjilhenduptenzin2892-jpg/Bank-of-Bhutan-Reporting-sub000/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeLedger monta um extrato sintético de dois meses com mistura conhecida
// de aprovações e recusas.
func makeLedger() []entity.RawRow {
	var rows []entity.RawRow
	add := func(month, n int, code, desc string) {
		for i := 0; i < n; i++ {
			rows = append(rows, entity.RawRow{
				Date:         fmt.Sprintf("2024-%02d-%02d", month, i%28+1),
				Channel:      "POS",
				ResponseCode: code,
				ResponseDesc: desc,
				Scheme:       "VISA",
				Amount:       "150",
				Currency:     "BTN",
			})
		}
	}

	// Janeiro: 50 transações, 80% de sucesso
	add(1, 40, "00", "Approved")
	add(1, 5, "51", "Insufficient funds")
	add(1, 3, "05", "Do not honour")
	add(1, 2, "91", "")

	// Fevereiro: 50 transações, 84% de sucesso
	add(2, 42, "00", "Approved")
	add(2, 6, "51", "Insufficient funds")
	add(2, 1, "05", "Do not honour")
	add(2, 1, "91", "")

	return rows
}

func runPipeline(t *testing.T) ([]entity.BucketKPI, []entity.ComparisonResult) {
	t.Helper()

	txns, dropped := NormalizeAll(makeLedger())
	require.Equal(t, 0, dropped)
	require.Len(t, txns, 100)

	buckets := Assign(txns, GranularityMonthly, 0)
	kpis := newAggregator().Compute(buckets, "", 5)
	return kpis, Compare(kpis)
}

func TestPipelineTwoMonths(t *testing.T) {
	kpis, comparisons := runPipeline(t)

	require.Len(t, kpis, 2)
	jan, feb := kpis[0], kpis[1]

	assert.Equal(t, "2024-01", jan.PeriodKey)
	assert.Equal(t, 50, jan.Total)
	assert.Equal(t, 40, jan.Success.Count)
	assert.Equal(t, 80.0, jan.Success.Rate)
	assert.Equal(t, 5, jan.User.Count)
	assert.Equal(t, 3, jan.Business.Count)
	assert.Equal(t, 2, jan.Technical.Count)

	assert.Equal(t, "2024-02", feb.PeriodKey)
	assert.Equal(t, 50, feb.Total)
	assert.Equal(t, 84.0, feb.Success.Rate)

	require.Len(t, comparisons, 1)
	c := comparisons[0]
	assert.Equal(t, 4.0, c.SuccessRateChange)
	assert.Equal(t, 0, c.TotalChange)
	assert.Equal(t, 1, c.UserChange)
	assert.Equal(t, -2, c.BusinessChange)
	assert.Equal(t, -1, c.TechnicalChange)

	require.NotNil(t, c.UserDeclineMover)
	assert.Equal(t, "Insufficient funds", c.UserDeclineMover.Description)
	assert.Equal(t, 1, c.UserDeclineMover.Increase)
}

func TestPipelineTopDeclineRanking(t *testing.T) {
	kpis, _ := runPipeline(t)

	jan := kpis[0]
	user := jan.TopDeclines[entity.CategoryUserDecline]
	require.Len(t, user, 1)
	assert.Equal(t, "51", user[0].Code)
	assert.Equal(t, 5, user[0].Count)
	assert.Equal(t, 100.0, user[0].Percent)

	tech := jan.TopDeclines[entity.CategoryTechnicalDecline]
	require.Len(t, tech, 1)
	assert.Equal(t, "91", tech[0].Code)
}

func TestPipelineDeterministic(t *testing.T) {
	firstKPIs, firstComparisons := runPipeline(t)
	for i := 0; i < 5; i++ {
		kpis, comparisons := runPipeline(t)
		require.Equal(t, firstKPIs, kpis)
		require.Equal(t, firstComparisons, comparisons)
	}
}

func TestPipelineRollupAgrees(t *testing.T) {
	rollup := newTestRollup()
	rollup.AddBatch(makeLedger())

	result, err := rollup.Finalize()
	require.NoError(t, err)

	assert.Equal(t, 100, result.RowsLoaded)
	assert.Equal(t, 0, result.InvalidRows)
	assert.Equal(t, 100, result.TotalCount)

	pos := result.Channels[entity.ChannelPOS]
	require.NotNil(t, pos)
	assert.Equal(t, 82, pos.Success)
	assert.Equal(t, 18, pos.Failures)
	assert.Equal(t, 150.0, pos.AverageTicket[entity.CurrencyBTN])

	visa := result.Brands[entity.SchemeVisa]
	require.NotNil(t, visa)
	assert.Equal(t, 100, visa.Total)
	assert.InDelta(t, 15000.0*0.0175, visa.MDRRevenue, 1e-6)
}
