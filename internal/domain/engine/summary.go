package engine

import (
	"fmt"
	"strings"

	"github.com/dorjilhenduptenzin2892-jpg/Bank-of-Bhutan-Reporting-sub000/internal/domain/entity"
)

// ExecutiveSummary monta o resumo executivo em texto puro a partir dos KPIs
// bucketizados e das comparações. O texto é consumido como está pelos
// geradores de documento; nenhuma formatação rica entra aqui.
func ExecutiveSummary(kpis []entity.BucketKPI, comparisons []entity.ComparisonResult) string {
	if len(kpis) == 0 {
		return "No transactions in the selected period."
	}

	total := 0
	success := 0
	for _, kpi := range kpis {
		total += kpi.Total
		success += kpi.Success.Count
	}

	best := kpis[0]
	worst := kpis[0]
	for _, kpi := range kpis[1:] {
		if kpi.Success.Rate > best.Success.Rate {
			best = kpi
		}
		if kpi.Success.Rate < worst.Success.Rate {
			worst = kpi
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Periods analysed: %d (%s to %s)\n", len(kpis), kpis[0].PeriodKey, kpis[len(kpis)-1].PeriodKey)
	fmt.Fprintf(&b, "Total transactions: %d, overall success rate: %.2f%%\n", total, rate(success, total))
	fmt.Fprintf(&b, "Best period: %s (%.2f%%), worst period: %s (%.2f%%)\n",
		best.PeriodKey, best.Success.Rate, worst.PeriodKey, worst.Success.Rate)

	if reason := dominantDecline(kpis); reason != "" {
		fmt.Fprintf(&b, "Most frequent decline: %s\n", reason)
	}

	if swing := largestSwing(comparisons); swing != nil {
		direction := "improved"
		if swing.SuccessRateChange < 0 {
			direction = "deteriorated"
		}
		fmt.Fprintf(&b, "Largest swing: success rate %s by %.2f pp from %s to %s\n",
			direction, abs2(swing.SuccessRateChange), swing.PreviousPeriod, swing.CurrentPeriod)
		if swing.Narrative != "" {
			fmt.Fprintf(&b, "%s\n", swing.Narrative)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// dominantDecline devolve "código (descrição, N)" do motivo de recusa mais
// frequente em todos os buckets, somadas as três categorias de recusa.
func dominantDecline(kpis []entity.BucketKPI) string {
	totals := map[declineKey]int{}
	var order []declineKey
	for _, kpi := range kpis {
		for _, category := range entity.DeclineCategories {
			for _, record := range kpi.TopDeclines[category] {
				dk := declineKey{code: record.Code, desc: record.Description}
				if _, seen := totals[dk]; !seen {
					order = append(order, dk)
				}
				totals[dk] += record.Count
			}
		}
	}

	var top declineKey
	topCount := 0
	for _, dk := range order {
		if totals[dk] > topCount {
			top, topCount = dk, totals[dk]
		}
	}
	if topCount == 0 {
		return ""
	}
	if top.desc == "" {
		return fmt.Sprintf("code %s (%d occurrences)", top.code, topCount)
	}
	return fmt.Sprintf("%s (%s, %d occurrences)", top.code, top.desc, topCount)
}

func largestSwing(comparisons []entity.ComparisonResult) *entity.ComparisonResult {
	var swing *entity.ComparisonResult
	for i := range comparisons {
		c := &comparisons[i]
		if swing == nil || abs2(c.SuccessRateChange) > abs2(swing.SuccessRateChange) {
			swing = c
		}
	}
	return swing
}

func abs2(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
