package engine

import (
	"math"
	"sort"

	"github.com/dorjilhenduptenzin2892-jpg/Bank-of-Bhutan-Reporting-sub000/internal/domain/entity"
)

// DefaultTopDeclines é o limite padrão do ranking de motivos de recusa.
const DefaultTopDeclines = 10

// round2 arredonda para duas casas, half away from zero.
func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// rate devolve 100 × count / total com duas casas; total zero devolve 0,
// nunca NaN ou infinito.
func rate(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(100 * float64(count) / float64(total))
}

// declineKey agrupa registros de recusa distintos. Código e descrição juntos:
// o mesmo código com descrições livres diferentes produz registros separados.
type declineKey struct {
	code string
	desc string
}

// KPIAggregator computa os BucketKPIs a partir das transações agrupadas.
type KPIAggregator struct {
	classifier *Classifier
}

// NewKPIAggregator cria um agregador usando o classificador injetado.
func NewKPIAggregator(classifier *Classifier) *KPIAggregator {
	return &KPIAggregator{classifier: classifier}
}

// Compute emite um BucketKPI por bucket, em ordem de calendário. channel,
// quando definido e diferente de OTHER, é o contexto de classificação da
// visão filtrada; vazio usa o canal da própria transação. limit <= 0 usa
// DefaultTopDeclines.
func (a *KPIAggregator) Compute(
	buckets map[string][]entity.Transaction,
	channel entity.Channel,
	limit int,
) []entity.BucketKPI {
	if limit <= 0 {
		limit = DefaultTopDeclines
	}

	keys := SortedBucketKeys(buckets)
	kpis := make([]entity.BucketKPI, 0, len(keys))

	for _, key := range keys {
		kpis = append(kpis, a.computeBucket(key, buckets[key], channel, limit))
	}

	return kpis
}

func (a *KPIAggregator) computeBucket(
	key string,
	txns []entity.Transaction,
	channel entity.Channel,
	limit int,
) entity.BucketKPI {
	counts := map[entity.Category]int{}

	// Frequência por (código, descrição), preservando a ordem do primeiro
	// encontro para o desempate estável do ranking.
	freq := map[entity.Category]map[declineKey]int{}
	order := map[entity.Category][]declineKey{}
	descCounts := map[entity.Category]map[string]int{}
	descOrder := map[entity.Category][]string{}

	for _, txn := range txns {
		ctx := txn.Channel
		if channel != "" && channel != entity.ChannelOther {
			ctx = channel
		}
		category := a.classifier.Classify(ctx, txn.ResponseCode)
		counts[category]++

		if category == entity.CategorySuccess {
			continue
		}

		dk := declineKey{code: NormalizeCode(txn.ResponseCode), desc: txn.ResponseDesc}
		if freq[category] == nil {
			freq[category] = map[declineKey]int{}
			descCounts[category] = map[string]int{}
		}
		if _, seen := freq[category][dk]; !seen {
			order[category] = append(order[category], dk)
		}
		freq[category][dk]++
		if _, seen := descCounts[category][txn.ResponseDesc]; !seen {
			descOrder[category] = append(descOrder[category], txn.ResponseDesc)
		}
		descCounts[category][txn.ResponseDesc]++
	}

	total := len(txns)
	kpi := entity.BucketKPI{
		PeriodKey:     key,
		Total:         total,
		Success:       entity.CategoryStats{Count: counts[entity.CategorySuccess], Rate: rate(counts[entity.CategorySuccess], total)},
		Business:      entity.CategoryStats{Count: counts[entity.CategoryBusinessDecline], Rate: rate(counts[entity.CategoryBusinessDecline], total)},
		User:          entity.CategoryStats{Count: counts[entity.CategoryUserDecline], Rate: rate(counts[entity.CategoryUserDecline], total)},
		Technical:     entity.CategoryStats{Count: counts[entity.CategoryTechnicalDecline], Rate: rate(counts[entity.CategoryTechnicalDecline], total)},
		TopDeclines:   map[entity.Category][]entity.DeclineRecord{},
		DeclineCounts: descCounts,
		DeclineOrder:  descOrder,
	}

	for _, category := range entity.DeclineCategories {
		kpi.TopDeclines[category] = topDeclines(order[category], freq[category], counts[category], limit)
	}

	return kpi
}

// topDeclines ordena os registros por contagem decrescente com sort estável
// (empates mantêm a ordem do primeiro encontro) e corta no limite. Percent é
// relativo ao total da própria categoria no bucket.
func topDeclines(order []declineKey, freq map[declineKey]int, categoryTotal, limit int) []entity.DeclineRecord {
	records := make([]entity.DeclineRecord, 0, len(order))
	for _, dk := range order {
		records = append(records, entity.DeclineRecord{
			Code:        dk.code,
			Description: dk.desc,
			Count:       freq[dk],
			Percent:     rate(freq[dk], categoryTotal),
		})
	}

	// sort estável: empates preservam a ordem do primeiro encontro
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Count > records[j].Count
	})

	if len(records) > limit {
		records = records[:limit]
	}
	return records
}
