package types

// Config representa a configuração da aplicação carregável de arquivo.
// Flags de linha de comando vencem sobre valores do arquivo.
type Config struct {
	Files       []string           `json:"files" yaml:"files" toml:"files"`
	Channel     string             `json:"channel" yaml:"channel" toml:"channel"`
	Scheme      string             `json:"scheme" yaml:"scheme" toml:"scheme"`
	Granularity string             `json:"granularity" yaml:"granularity" toml:"granularity"`
	Year        int                `json:"year" yaml:"year" toml:"year"`
	TopN        int                `json:"top_n" yaml:"top_n" toml:"top_n"`
	ReportName  string             `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType  []string           `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir         string             `json:"dir" yaml:"dir" toml:"dir"`
	Analytics   bool               `json:"analytics" yaml:"analytics" toml:"analytics"`
	MDRRates    map[string]float64 `json:"mdr_rates" yaml:"mdr_rates" toml:"mdr_rates"`
}
