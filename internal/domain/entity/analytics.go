package entity

// ChannelSummary acumula os totais transversais de um canal (POS/ATM/IPG).
type ChannelSummary struct {
	Total    int `json:"total"`
	Success  int `json:"success"`
	Failures int `json:"failures"`

	// Volumes e contagens por moeda. Para POS/ATM tudo cai no bucket da
	// moeda local (Nu.); para IPG o código da moeda separa USD de INR.
	CurrencyVolumes map[Currency]float64 `json:"currency_volumes"`
	CurrencyCounts  map[Currency]int     `json:"currency_counts"`

	// AverageTicket usa a contagem da própria moeda como denominador.
	AverageTicket map[Currency]float64 `json:"average_ticket"`
}

// BrandSummary acumula os totais transversais de uma bandeira.
type BrandSummary struct {
	Total      int             `json:"total"`
	Volume     float64         `json:"volume"`
	MDRRevenue float64         `json:"mdr_revenue"`
	PerChannel map[Channel]int `json:"per_channel"`
}

// FailureReasonKey chaveia a matriz de motivos de falha para filtragem
// ad-hoc na visão de analytics.
type FailureReasonKey struct {
	Reason   string   `json:"reason"`
	Channel  Channel  `json:"channel"`
	Brand    Scheme   `json:"brand"`
	Category Category `json:"category"`
}

// FailureReasonEntry é uma célula da matriz de motivos, já com contagem.
type FailureReasonEntry struct {
	FailureReasonKey
	Count int `json:"count"`
}

// AnalyticsResult é o resumo transversal (canal × bandeira × categoria)
// produzido pelo acumulador de analytics, sem bucketing temporal.
type AnalyticsResult struct {
	RowsLoaded    int `json:"rows_loaded"`
	RowsProcessed int `json:"rows_processed"`
	InvalidRows   int `json:"invalid_rows"`

	TotalCount      int                  `json:"total_count"`
	CurrencyVolumes map[Currency]float64 `json:"currency_volumes"`

	Channels map[Channel]*ChannelSummary `json:"channels"`
	Brands   map[Scheme]*BrandSummary    `json:"brands"`

	// FailureCategories é a matriz categoria de falha × canal.
	FailureCategories map[Category]map[Channel]int `json:"failure_categories"`

	// FailureReasons é a matriz (motivo, canal, bandeira, categoria),
	// ordenada por contagem decrescente.
	FailureReasons []FailureReasonEntry `json:"failure_reasons"`
}
