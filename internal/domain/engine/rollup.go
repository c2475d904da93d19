package engine

import (
	"sort"

	"github.com/dorjilhenduptenzin2892-jpg/Bank-of-Bhutan-Reporting-sub000/internal/domain/entity"
	"github.com/dorjilhenduptenzin2892-jpg/Bank-of-Bhutan-Reporting-sub000/internal/shared/types"
)

// DefaultMDRRates devolve as taxas de MDR por bandeira usadas nas receitas
// do rollup quando o arquivo de config não define outras.
func DefaultMDRRates() map[entity.Scheme]float64 {
	return map[entity.Scheme]float64{
		entity.SchemeVisa:       0.0175,
		entity.SchemeMastercard: 0.0175,
		entity.SchemeAmex:       0.0250,
		entity.SchemeOther:      0.0100,
	}
}

// Rollup é o acumulador transversal da visão de analytics. Alimente linha a
// linha com AddRow (ou em lotes com AddBatch) e feche com Finalize. Uma
// instância não é segura para uso concorrente; para reduzir chunks em
// paralelo, acumule um Rollup por chunk e some com Merge; toda a soma é
// associativa e comutativa.
type Rollup struct {
	classifier *Classifier
	mdrRates   map[entity.Scheme]float64

	rowsLoaded  int
	invalidRows int

	totalCount      int
	currencyVolumes map[entity.Currency]float64

	channels          map[entity.Channel]*entity.ChannelSummary
	brands            map[entity.Scheme]*entity.BrandSummary
	failureCategories map[entity.Category]map[entity.Channel]int
	failureReasons    map[entity.FailureReasonKey]int
}

// NewRollup cria um acumulador vazio. mdrRates nulo usa DefaultMDRRates.
func NewRollup(classifier *Classifier, mdrRates map[entity.Scheme]float64) *Rollup {
	if mdrRates == nil {
		mdrRates = DefaultMDRRates()
	}
	return &Rollup{
		classifier:        classifier,
		mdrRates:          mdrRates,
		currencyVolumes:   map[entity.Currency]float64{},
		channels:          map[entity.Channel]*entity.ChannelSummary{},
		brands:            map[entity.Scheme]*entity.BrandSummary{},
		failureCategories: map[entity.Category]map[entity.Channel]int{},
		failureReasons:    map[entity.FailureReasonKey]int{},
	}
}

// rollupCurrency aplica a atribuição de moeda dependente do canal: linhas
// IPG separam USD de INR pelo código da moeda; POS e ATM caem sempre no
// bucket único da moeda local (Nu.). Linhas IPG com outra moeda, e linhas
// POS/ATM marcadas com moeda estrangeira, são um descasamento canal/moeda.
func rollupCurrency(channel entity.Channel, currency entity.Currency) (entity.Currency, bool) {
	switch channel {
	case entity.ChannelIPG:
		if currency == entity.CurrencyUSD || currency == entity.CurrencyINR {
			return currency, true
		}
		return "", false
	case entity.ChannelPOS, entity.ChannelATM:
		if currency == entity.CurrencyUSD || currency == entity.CurrencyINR {
			return "", false
		}
		return entity.CurrencyBTN, true
	}
	return "", false
}

// AddRow acumula uma linha bruta. Linhas com data inválida, canal não
// reconhecido ou descasamento canal/moeda são excluídas e contadas no tally
// de inválidas, nunca viram erro.
func (r *Rollup) AddRow(row entity.RawRow) {
	r.rowsLoaded++

	txn, ok := Normalize(row)
	if !ok {
		r.invalidRows++
		return
	}
	if txn.Channel == entity.ChannelOther {
		r.invalidRows++
		return
	}
	currency, ok := rollupCurrency(txn.Channel, txn.Currency)
	if !ok {
		r.invalidRows++
		return
	}

	category := r.classifier.Classify(txn.Channel, txn.ResponseCode)

	r.totalCount++
	r.currencyVolumes[currency] += txn.Amount

	channel := r.channelSummary(txn.Channel)
	channel.Total++
	channel.CurrencyVolumes[currency] += txn.Amount
	channel.CurrencyCounts[currency]++
	if category == entity.CategorySuccess {
		channel.Success++
	} else {
		channel.Failures++
	}

	brand := r.brandSummary(txn.Scheme)
	brand.Total++
	brand.Volume += txn.Amount
	brand.MDRRevenue += txn.Amount * r.mdrRates[txn.Scheme]
	brand.PerChannel[txn.Channel]++

	if category != entity.CategorySuccess {
		if r.failureCategories[category] == nil {
			r.failureCategories[category] = map[entity.Channel]int{}
		}
		r.failureCategories[category][txn.Channel]++

		r.failureReasons[entity.FailureReasonKey{
			Reason:   r.failureReason(txn),
			Channel:  txn.Channel,
			Brand:    txn.Scheme,
			Category: category,
		}]++
	}
}

// AddBatch acumula um lote de linhas; é o ponto de interrupção natural para
// laços com barra de progresso em arquivos grandes.
func (r *Rollup) AddBatch(rows []entity.RawRow) {
	for _, row := range rows {
		r.AddRow(row)
	}
}

// failureReason escolhe o rótulo da matriz de motivos: a descrição livre da
// linha, a descrição do dicionário técnico, ou o próprio código.
func (r *Rollup) failureReason(txn entity.Transaction) string {
	if txn.ResponseDesc != "" {
		return txn.ResponseDesc
	}
	if desc := r.classifier.TechnicalDescription(txn.ResponseCode); desc != "" {
		return desc
	}
	return "Code " + txn.ResponseCode
}

func (r *Rollup) channelSummary(channel entity.Channel) *entity.ChannelSummary {
	summary := r.channels[channel]
	if summary == nil {
		summary = &entity.ChannelSummary{
			CurrencyVolumes: map[entity.Currency]float64{},
			CurrencyCounts:  map[entity.Currency]int{},
			AverageTicket:   map[entity.Currency]float64{},
		}
		r.channels[channel] = summary
	}
	return summary
}

func (r *Rollup) brandSummary(scheme entity.Scheme) *entity.BrandSummary {
	summary := r.brands[scheme]
	if summary == nil {
		summary = &entity.BrandSummary{PerChannel: map[entity.Channel]int{}}
		r.brands[scheme] = summary
	}
	return summary
}

// Merge soma o estado parcial de outro acumulador neste. Permite redução
// paralela de chunks: processe cada chunk em um Rollup próprio e some tudo.
func (r *Rollup) Merge(other *Rollup) {
	r.rowsLoaded += other.rowsLoaded
	r.invalidRows += other.invalidRows
	r.totalCount += other.totalCount

	for currency, volume := range other.currencyVolumes {
		r.currencyVolumes[currency] += volume
	}

	for ch, summary := range other.channels {
		dst := r.channelSummary(ch)
		dst.Total += summary.Total
		dst.Success += summary.Success
		dst.Failures += summary.Failures
		for currency, volume := range summary.CurrencyVolumes {
			dst.CurrencyVolumes[currency] += volume
		}
		for currency, count := range summary.CurrencyCounts {
			dst.CurrencyCounts[currency] += count
		}
	}

	for scheme, summary := range other.brands {
		dst := r.brandSummary(scheme)
		dst.Total += summary.Total
		dst.Volume += summary.Volume
		dst.MDRRevenue += summary.MDRRevenue
		for ch, count := range summary.PerChannel {
			dst.PerChannel[ch] += count
		}
	}

	for category, perChannel := range other.failureCategories {
		if r.failureCategories[category] == nil {
			r.failureCategories[category] = map[entity.Channel]int{}
		}
		for ch, count := range perChannel {
			r.failureCategories[category][ch] += count
		}
	}

	for key, count := range other.failureReasons {
		r.failureReasons[key] += count
	}
}

// Finalize fecha o acumulador e devolve o resumo transversal. Zero linhas
// válidas é uma falha de chamada: sem dados não há KPI que faça sentido.
func (r *Rollup) Finalize() (entity.AnalyticsResult, error) {
	if r.rowsLoaded == 0 {
		return entity.AnalyticsResult{}, types.ErrNoTransactions
	}
	if r.totalCount == 0 {
		return entity.AnalyticsResult{}, types.ErrNoValidRows
	}

	// Ticket médio por moeda: o denominador é a contagem da própria moeda,
	// não o total do canal.
	for _, summary := range r.channels {
		for currency, volume := range summary.CurrencyVolumes {
			if count := summary.CurrencyCounts[currency]; count > 0 {
				summary.AverageTicket[currency] = round2(volume / float64(count))
			}
		}
	}

	reasons := make([]entity.FailureReasonEntry, 0, len(r.failureReasons))
	for key, count := range r.failureReasons {
		reasons = append(reasons, entity.FailureReasonEntry{FailureReasonKey: key, Count: count})
	}
	sort.Slice(reasons, func(i, j int) bool {
		if reasons[i].Count != reasons[j].Count {
			return reasons[i].Count > reasons[j].Count
		}
		if reasons[i].Reason != reasons[j].Reason {
			return reasons[i].Reason < reasons[j].Reason
		}
		if reasons[i].Channel != reasons[j].Channel {
			return reasons[i].Channel < reasons[j].Channel
		}
		return reasons[i].Brand < reasons[j].Brand
	})

	return entity.AnalyticsResult{
		RowsLoaded:        r.rowsLoaded,
		RowsProcessed:     r.totalCount,
		InvalidRows:       r.invalidRows,
		TotalCount:        r.totalCount,
		CurrencyVolumes:   r.currencyVolumes,
		Channels:          r.channels,
		Brands:            r.brands,
		FailureCategories: r.failureCategories,
		FailureReasons:    reasons,
	}, nil
}
