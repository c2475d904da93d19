package entity

// Category classifica o desfecho de uma transação a partir do response code.
type Category string

const (
	CategorySuccess          Category = "success"
	CategoryBusinessDecline  Category = "business_decline"
	CategoryUserDecline      Category = "user_decline"
	CategoryTechnicalDecline Category = "technical_decline"
)

// DeclineCategories lista as categorias de recusa, na ordem de exibição.
var DeclineCategories = []Category{
	CategoryBusinessDecline,
	CategoryUserDecline,
	CategoryTechnicalDecline,
}

// DeclineRecord representa um motivo de recusa agregado dentro de um bucket.
// Percent é a participação dentro do total da própria categoria no bucket,
// não do total geral do bucket.
type DeclineRecord struct {
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Count       int     `json:"count"`
	Percent     float64 `json:"percent"`
}

// CategoryStats acumula contagem e taxa de uma categoria dentro de um bucket.
type CategoryStats struct {
	Count int     `json:"count"`
	Rate  float64 `json:"rate"`
}

// BucketKPI é o resultado agregado de um período (bucket) do relatório.
type BucketKPI struct {
	PeriodKey   string                       `json:"period_key"`
	Total       int                          `json:"total"`
	Success     CategoryStats                `json:"success"`
	Business    CategoryStats                `json:"business_decline"`
	User        CategoryStats                `json:"user_decline"`
	Technical   CategoryStats                `json:"technical_decline"`
	TopDeclines map[Category][]DeclineRecord `json:"top_declines"`

	// DeclineCounts guarda o mapa completo descrição→contagem por categoria.
	// O comparador precisa dos mapas completos, não apenas do top-N.
	DeclineCounts map[Category]map[string]int `json:"-"`

	// DeclineOrder guarda as descrições na ordem do primeiro encontro no
	// bucket; o desempate do "top mover" do comparador depende dela.
	DeclineOrder map[Category][]string `json:"-"`
}

// StatsFor devolve as estatísticas da categoria pedida.
func (k BucketKPI) StatsFor(c Category) CategoryStats {
	switch c {
	case CategorySuccess:
		return k.Success
	case CategoryBusinessDecline:
		return k.Business
	case CategoryUserDecline:
		return k.User
	case CategoryTechnicalDecline:
		return k.Technical
	}
	return CategoryStats{}
}
