package engine

import (
	"strings"

	"github.com/dorjilhenduptenzin2892-jpg/Bank-of-Bhutan-Reporting-sub000/internal/domain/entity"
)

// successCode é o único sentinela de aprovação depois da normalização.
const successCode = "00"

// NormalizeCode canonicaliza um response code bruto. A mesma função é usada
// pela classificação, pelas chaves de agrupamento e pelos joins do
// comparador, para que " 05 ", "05" e "005" caiam sempre no mesmo bucket.
//
// Regras: trim + uppercase; códigos totalmente numéricos perdem zeros à
// esquerda supérfluos e voltam a ter no mínimo dois dígitos ("0", "00" e
// "000" → "00"; "5" → "05"; "051" → "51"). Códigos não numéricos passam
// apenas por trim e uppercase.
func NormalizeCode(raw string) string {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" {
		return ""
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return code
		}
	}
	code = strings.TrimLeft(code, "0")
	for len(code) < 2 {
		code = "0" + code
	}
	return code
}

// Classifier mapeia response codes normalizados para categorias de desfecho.
type Classifier struct {
	tables CodeTables
}

// NewClassifier cria um classificador com as tabelas injetadas.
func NewClassifier(tables CodeTables) *Classifier {
	return &Classifier{tables: tables}
}

// Classify devolve a categoria de uma transação. Função pura: sem efeitos
// colaterais, insensível a caixa e espaços. Precedência determinística:
// sucesso, depois o conjunto de recusa de usuário do canal, depois o
// dicionário técnico, senão recusa de negócio.
func (c *Classifier) Classify(channel entity.Channel, rawCode string) entity.Category {
	code := NormalizeCode(rawCode)

	if code == successCode {
		return entity.CategorySuccess
	}

	userSet := c.tables.UserDeclinePOS
	if channel == entity.ChannelIPG {
		userSet = c.tables.UserDeclineIPG
	}
	if userSet[code] {
		return entity.CategoryUserDecline
	}

	if _, ok := c.tables.Technical[code]; ok {
		return entity.CategoryTechnicalDecline
	}

	return entity.CategoryBusinessDecline
}

// TechnicalDescription devolve a descrição padrão de um código técnico,
// ou "" quando o código não é técnico.
func (c *Classifier) TechnicalDescription(rawCode string) string {
	return c.tables.Technical[NormalizeCode(rawCode)]
}
