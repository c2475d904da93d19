package repository

import (
	"context"

	"github.com/dorjilhenduptenzin2892-jpg/Bank-of-Bhutan-Reporting-sub000/internal/domain/entity"
)

// LedgerRepository define a interface do leitor de arquivos do ledger de
// aquisição. O núcleo de agregação nunca lê arquivos: recebe as linhas
// brutas já materializadas por esta porta.
type LedgerRepository interface {
	// LoadRows lê todas as linhas de um arquivo de ledger.
	LoadRows(ctx context.Context, path string) ([]entity.RawRow, error)

	// StreamRows entrega as linhas em lotes de batchSize através do
	// callback, para arquivos grandes; parar de consumir é o único
	// mecanismo de cancelamento além do contexto.
	StreamRows(ctx context.Context, path string, batchSize int, fn func(batch []entity.RawRow) error) error
}
