package engine

import (
	"testing"
	"time"

	"github.com/dorjilhenduptenzin2892-jpg/Bank-of-Bhutan-Reporting-sub000/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutiveSummaryEmpty(t *testing.T) {
	assert.Equal(t, "No transactions in the selected period.", ExecutiveSummary(nil, nil))
}

func TestExecutiveSummaryContents(t *testing.T) {
	var jan []entity.Transaction
	jan = append(jan, monthTxns(2024, time.January, 7, "00", "Approved")...)
	jan = append(jan, monthTxns(2024, time.January, 3, "51", "Insufficient funds")...)

	var feb []entity.Transaction
	feb = append(feb, monthTxns(2024, time.February, 9, "00", "Approved")...)
	feb = append(feb, monthTxns(2024, time.February, 1, "51", "Insufficient funds")...)

	kpis := newAggregator().Compute(map[string][]entity.Transaction{
		"2024-01": jan,
		"2024-02": feb,
	}, "", 0)
	comparisons := Compare(kpis)

	summary := ExecutiveSummary(kpis, comparisons)

	assert.Contains(t, summary, "Periods analysed: 2 (2024-01 to 2024-02)")
	assert.Contains(t, summary, "Total transactions: 20, overall success rate: 80.00%")
	assert.Contains(t, summary, "Best period: 2024-02 (90.00%)")
	assert.Contains(t, summary, "worst period: 2024-01 (70.00%)")
	assert.Contains(t, summary, "Insufficient funds")
	assert.Contains(t, summary, "improved by 20.00 pp")
}

func TestExecutiveSummaryDeterministic(t *testing.T) {
	var txns []entity.Transaction
	txns = append(txns, monthTxns(2024, time.March, 5, "00", "Approved")...)
	txns = append(txns, monthTxns(2024, time.March, 2, "05", "Do not honour")...)
	txns = append(txns, monthTxns(2024, time.March, 2, "14", "Invalid card number")...)

	buckets := map[string][]entity.Transaction{"2024-03": txns}

	first := ExecutiveSummary(newAggregator().Compute(buckets, "", 0), nil)
	for i := 0; i < 5; i++ {
		again := ExecutiveSummary(newAggregator().Compute(buckets, "", 0), nil)
		require.Equal(t, first, again)
	}
}
