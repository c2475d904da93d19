package ledger

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dorjilhenduptenzin2892-jpg/Bank-of-Bhutan-Reporting-sub000/internal/domain/entity"
	"github.com/dorjilhenduptenzin2892-jpg/Bank-of-Bhutan-Reporting-sub000/internal/domain/repository"
	"github.com/dorjilhenduptenzin2892-jpg/Bank-of-Bhutan-Reporting-sub000/internal/shared/types"
)

// CSVRepositoryImpl implementa o LedgerRepository para os extratos CSV que o
// switch de aquisição exporta. As colunas são mapeadas pelo cabeçalho, em
// qualquer ordem; colunas opcionais podem faltar.
type CSVRepositoryImpl struct{}

// NewCSVRepository cria uma nova implementação do LedgerRepository.
func NewCSVRepository() repository.LedgerRepository {
	return &CSVRepositoryImpl{}
}

// columnAliases mapeia nomes de cabeçalho conhecidos (já canonicalizados)
// para cada campo da RawRow.
var columnAliases = map[string][]string{
	"date":     {"date", "txndate", "transactiondate", "trandate", "datetime"},
	"channel":  {"channel", "type", "txntype", "deliverychannel"},
	"code":     {"responsecode", "respcode", "rc", "actioncode"},
	"desc":     {"responsedescription", "respdesc", "responsedesc", "description", "reason"},
	"scheme":   {"scheme", "brand", "cardnetwork", "network", "cardscheme"},
	"merchant": {"merchantid", "mid", "merchant"},
	"amount":   {"amount", "txnamount", "transactionamount", "value"},
	"currency": {"currency", "ccy", "currencycode", "curcode"},
	"mcc":      {"mcc", "merchantcategory", "merchantcategorycode"},
}

func canonicalHeader(cell string) string {
	cell = strings.ToLower(strings.TrimSpace(cell))
	cell = strings.NewReplacer(" ", "", "_", "", "-", "", ".", "").Replace(cell)
	return cell
}

// columnMap resolve o índice de cada campo a partir da linha de cabeçalho.
// Campos sem coluna correspondente ficam com índice -1.
func columnMap(header []string) map[string]int {
	indexes := map[string]int{}
	for field := range columnAliases {
		indexes[field] = -1
	}
	for i, cell := range header {
		canon := canonicalHeader(cell)
		for field, aliases := range columnAliases {
			if indexes[field] != -1 {
				continue
			}
			for _, alias := range aliases {
				if canon == alias {
					indexes[field] = i
					break
				}
			}
		}
	}
	return indexes
}

func cellAt(record []string, index int) string {
	if index < 0 || index >= len(record) {
		return ""
	}
	return record[index]
}

func rowFromRecord(record []string, indexes map[string]int) entity.RawRow {
	return entity.RawRow{
		Date:         cellAt(record, indexes["date"]),
		Channel:      cellAt(record, indexes["channel"]),
		ResponseCode: cellAt(record, indexes["code"]),
		ResponseDesc: cellAt(record, indexes["desc"]),
		Scheme:       cellAt(record, indexes["scheme"]),
		MerchantID:   cellAt(record, indexes["merchant"]),
		Amount:       cellAt(record, indexes["amount"]),
		Currency:     cellAt(record, indexes["currency"]),
		MCC:          cellAt(record, indexes["mcc"]),
	}
}

func openReader(path string) (*os.File, *csv.Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening ledger file: %w", err)
	}
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	return file, reader, nil
}

// LoadRows lê todas as linhas do arquivo de uma vez.
func (r *CSVRepositoryImpl) LoadRows(ctx context.Context, path string) ([]entity.RawRow, error) {
	var rows []entity.RawRow
	err := r.StreamRows(ctx, path, 0, func(batch []entity.RawRow) error {
		rows = append(rows, batch...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// StreamRows entrega as linhas em lotes de batchSize (<= 0 entrega tudo em
// um lote único). Um arquivo sem linhas de dados é erro do chamador.
func (r *CSVRepositoryImpl) StreamRows(ctx context.Context, path string, batchSize int, fn func(batch []entity.RawRow) error) error {
	file, reader, err := openReader(path)
	if err != nil {
		return err
	}
	defer file.Close()

	header, err := reader.Read()
	if err == io.EOF {
		return types.ErrNoTransactions
	}
	if err != nil {
		return fmt.Errorf("error reading ledger header: %w", err)
	}
	indexes := columnMap(header)
	if indexes["date"] == -1 || indexes["code"] == -1 {
		return fmt.Errorf("ledger file %s is missing a date or response code column", path)
	}

	var batch []entity.RawRow
	seen := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// linha malformada: descartada, nunca repetida
			continue
		}

		batch = append(batch, rowFromRecord(record, indexes))
		seen++
		if batchSize > 0 && len(batch) >= batchSize {
			if err := fn(batch); err != nil {
				return err
			}
			batch = nil
		}
	}

	if len(batch) > 0 {
		if err := fn(batch); err != nil {
			return err
		}
	}
	if seen == 0 {
		return types.ErrNoTransactions
	}
	return nil
}
