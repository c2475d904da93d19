package engine

import (
	"fmt"

	"github.com/dorjilhenduptenzin2892-jpg/Bank-of-Bhutan-Reporting-sub000/internal/domain/entity"
)

// Compare computa os deltas entre buckets cronologicamente adjacentes, um
// ComparisonResult por par. Entrada vazia ou com um único bucket devolve
// saída vazia.
func Compare(kpis []entity.BucketKPI) []entity.ComparisonResult {
	if len(kpis) < 2 {
		return nil
	}

	results := make([]entity.ComparisonResult, 0, len(kpis)-1)
	for i := 1; i < len(kpis); i++ {
		results = append(results, comparePair(kpis[i-1], kpis[i]))
	}
	return results
}

func comparePair(prev, cur entity.BucketKPI) entity.ComparisonResult {
	result := entity.ComparisonResult{
		PreviousPeriod:    prev.PeriodKey,
		CurrentPeriod:     cur.PeriodKey,
		SuccessRateChange: round2(cur.Success.Rate - prev.Success.Rate),
		TotalChange:       cur.Total - prev.Total,
		BusinessChange:    cur.Business.Count - prev.Business.Count,
		UserChange:        cur.User.Count - prev.User.Count,
		TechnicalChange:   cur.Technical.Count - prev.Technical.Count,
	}

	if result.UserChange > 0 {
		mover := topUserDeclineMover(prev, cur)
		if mover != nil {
			result.UserDeclineMover = mover
			result.Narrative = fmt.Sprintf(
				"User declines went up by %d in %s; largest contributor: %s (+%d)",
				result.UserChange, cur.PeriodKey, mover.Description, mover.Increase)
		} else {
			result.Narrative = fmt.Sprintf(
				"User declines went up by %d in %s", result.UserChange, cur.PeriodKey)
		}
	}

	return result
}

// topUserDeclineMover acha a descrição de recusa de usuário com o maior
// crescimento absoluto entre os dois períodos. Contagens ausentes no período
// anterior valem 0 (descrição nova). Só deltas positivos qualificam; empates
// favorecem a primeira descrição vista na iteração do bucket atual.
func topUserDeclineMover(prev, cur entity.BucketKPI) *entity.TopMover {
	prevCounts := prev.DeclineCounts[entity.CategoryUserDecline]
	curCounts := cur.DeclineCounts[entity.CategoryUserDecline]

	var mover *entity.TopMover
	for _, desc := range cur.DeclineOrder[entity.CategoryUserDecline] {
		delta := curCounts[desc] - prevCounts[desc]
		if delta <= 0 {
			continue
		}
		if mover == nil || delta > mover.Increase {
			mover = &entity.TopMover{Description: desc, Increase: delta}
		}
	}
	return mover
}
