package engine

import (
	"strconv"
	"strings"
	"time"

	"github.com/dorjilhenduptenzin2892-jpg/Bank-of-Bhutan-Reporting-sub000/internal/domain/entity"
)

// serialEpoch é a época dos seriais de data de planilha (1899-12-30).
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// dateLayouts são os formatos de string aceitos, na ordem de tentativa.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006",
	"02-01-2006",
	"02-Jan-2006",
}

// ParseDate converte um campo de data heterogêneo em time.Time. Campos
// numéricos são seriais de planilha: dias (fracionários inclusive) desde a
// época, convertidos via dias × 86400 × 1000 milissegundos. Strings passam
// pela lista de formatos. Datas inválidas devolvem ok=false (filtro de
// qualidade de dados, nunca erro).
func ParseDate(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}

	if days, err := strconv.ParseFloat(value, 64); err == nil {
		if days <= 0 {
			return time.Time{}, false
		}
		ms := int64(days * 86400 * 1000)
		return serialEpoch.Add(time.Duration(ms) * time.Millisecond), true
	}

	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.UTC(), true
		}
	}

	return time.Time{}, false
}

// ParseAmount converte um valor monetário possivelmente formatado com
// separadores de milhar. Valores não parseáveis viram 0, nunca erro.
func ParseAmount(raw string) float64 {
	value := strings.TrimSpace(raw)
	value = strings.ReplaceAll(value, ",", "")
	value = strings.ReplaceAll(value, " ", "")
	value = strings.TrimPrefix(value, "Nu.")
	if value == "" {
		return 0
	}
	amount, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return amount
}

// NormalizeChannel mapeia o campo de canal para POS/ATM/IPG; valores
// desconhecidos ou vazios viram o sentinela OTHER em vez de descartados.
func NormalizeChannel(raw string) entity.Channel {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "POS":
		return entity.ChannelPOS
	case "ATM":
		return entity.ChannelATM
	case "IPG", "ECOM", "E-COM":
		return entity.ChannelIPG
	}
	return entity.ChannelOther
}

// NormalizeScheme mapeia a bandeira do cartão para o enum canônico.
func NormalizeScheme(raw string) entity.Scheme {
	value := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case strings.Contains(value, "VISA"):
		return entity.SchemeVisa
	case strings.Contains(value, "MASTER"), value == "MC":
		return entity.SchemeMastercard
	case strings.Contains(value, "AMEX"), strings.Contains(value, "AMERICAN EXPRESS"):
		return entity.SchemeAmex
	}
	return entity.SchemeOther
}

// NormalizeCurrency aceita códigos alfabéticos e numéricos (ISO 4217).
func NormalizeCurrency(raw string) entity.Currency {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "BTN", "NU", "NU.", "064":
		return entity.CurrencyBTN
	case "USD", "840":
		return entity.CurrencyUSD
	case "INR", "356":
		return entity.CurrencyINR
	}
	return entity.CurrencyUnknown
}

// Normalize converte uma linha bruta em Transaction canônica. Linhas cuja
// data não parseia são descartadas (ok=false).
func Normalize(row entity.RawRow) (entity.Transaction, bool) {
	ts, ok := ParseDate(row.Date)
	if !ok {
		return entity.Transaction{}, false
	}

	return entity.Transaction{
		Timestamp:    ts,
		Channel:      NormalizeChannel(row.Channel),
		ResponseCode: NormalizeCode(row.ResponseCode),
		ResponseDesc: strings.TrimSpace(row.ResponseDesc),
		Scheme:       NormalizeScheme(row.Scheme),
		MerchantID:   strings.TrimSpace(row.MerchantID),
		Amount:       ParseAmount(row.Amount),
		Currency:     NormalizeCurrency(row.Currency),
		MCC:          strings.TrimSpace(row.MCC),
	}, true
}

// NormalizeAll normaliza um lote de linhas e devolve também quantas foram
// descartadas por data inválida.
func NormalizeAll(rows []entity.RawRow) ([]entity.Transaction, int) {
	txns := make([]entity.Transaction, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		txn, ok := Normalize(row)
		if !ok {
			dropped++
			continue
		}
		txns = append(txns, txn)
	}
	return txns, dropped
}
