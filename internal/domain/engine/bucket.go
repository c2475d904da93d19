package engine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dorjilhenduptenzin2892-jpg/Bank-of-Bhutan-Reporting-sub000/internal/domain/entity"
)

// Granularity seleciona o calendário de bucketing do relatório.
type Granularity string

const (
	GranularityDaily     Granularity = "daily"
	GranularityWeekly    Granularity = "weekly"
	GranularityMonthly   Granularity = "monthly"
	GranularityQuarterly Granularity = "quarterly"
	GranularityYearly    Granularity = "yearly"
	// GranularityCustom é um intervalo arbitrário tratado como diário.
	GranularityCustom Granularity = "custom"
)

// ParseGranularity valida o valor vindo da CLI ou do arquivo de config.
func ParseGranularity(raw string) (Granularity, error) {
	g := Granularity(strings.ToLower(strings.TrimSpace(raw)))
	switch g {
	case GranularityDaily, GranularityWeekly, GranularityMonthly,
		GranularityQuarterly, GranularityYearly, GranularityCustom:
		return g, nil
	case "":
		return GranularityMonthly, nil
	}
	return "", fmt.Errorf("unknown granularity %q (use daily, weekly, monthly, quarterly, yearly or custom)", raw)
}

// PeriodKeyFor devolve a chave de período de uma transação. Semanas seguem a
// ISO 8601: a quinta-feira da semana civil decide o número e o ano "dono" da
// semana, que pode diferir do ano civil da transação na virada do ano.
func PeriodKeyFor(txn entity.Transaction, g Granularity) string {
	ts := txn.Timestamp
	switch g {
	case GranularityWeekly:
		year, week := ts.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case GranularityMonthly:
		return ts.Format("2006-01")
	case GranularityQuarterly:
		quarter := (int(ts.Month())-1)/3 + 1
		return fmt.Sprintf("%04d-Q%d", ts.Year(), quarter)
	case GranularityYearly:
		return fmt.Sprintf("%04d", ts.Year())
	}
	// daily e custom agrupam pela data completa
	return ts.Format("2006-01-02")
}

// Assign agrupa transações por chave de período. selectedYear > 0 restringe
// o relatório a um único ano: transações fora dele são excluídas, não
// realocadas para outro bucket.
func Assign(txns []entity.Transaction, g Granularity, selectedYear int) map[string][]entity.Transaction {
	buckets := make(map[string][]entity.Transaction)
	for _, txn := range txns {
		if selectedYear > 0 && txn.Timestamp.Year() != selectedYear {
			continue
		}
		key := PeriodKeyFor(txn, g)
		buckets[key] = append(buckets[key], txn)
	}
	return buckets
}

// periodOrd é a tupla numérica de ordenação de uma chave de período.
type periodOrd struct {
	year  int
	major int
	minor int
}

// parsePeriodKey extrai os componentes numéricos de uma chave. Chaves fora
// dos cinco formatos conhecidos ordenam por string no desempate.
func parsePeriodKey(key string) periodOrd {
	atoi := func(s string) int {
		n, _ := strconv.Atoi(s)
		return n
	}

	switch {
	case strings.Contains(key, "-W"):
		parts := strings.SplitN(key, "-W", 2)
		return periodOrd{year: atoi(parts[0]), major: atoi(parts[1])}
	case strings.Contains(key, "-Q"):
		parts := strings.SplitN(key, "-Q", 2)
		return periodOrd{year: atoi(parts[0]), major: atoi(parts[1])}
	}

	parts := strings.Split(key, "-")
	switch len(parts) {
	case 3:
		return periodOrd{year: atoi(parts[0]), major: atoi(parts[1]), minor: atoi(parts[2])}
	case 2:
		return periodOrd{year: atoi(parts[0]), major: atoi(parts[1])}
	default:
		return periodOrd{year: atoi(parts[0])}
	}
}

// SortPeriodKeys ordena chaves de período em ordem de calendário, comparando
// as tuplas numéricas componente a componente. Ordenação lexical não serve:
// o zero-padding sozinho não garante ordem correta quando chaves semanais e
// trimestrais se misturam no mesmo conjunto.
func SortPeriodKeys(keys []string) {
	sort.Slice(keys, func(i, j int) bool {
		a, b := parsePeriodKey(keys[i]), parsePeriodKey(keys[j])
		if a.year != b.year {
			return a.year < b.year
		}
		if a.major != b.major {
			return a.major < b.major
		}
		if a.minor != b.minor {
			return a.minor < b.minor
		}
		return keys[i] < keys[j]
	})
}

// SortedBucketKeys devolve as chaves de um mapa de buckets já ordenadas.
func SortedBucketKeys(buckets map[string][]entity.Transaction) []string {
	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	SortPeriodKeys(keys)
	return keys
}
