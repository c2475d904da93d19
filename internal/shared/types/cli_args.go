package types

// CLIArgs representa os argumentos de linha de comando.
type CLIArgs struct {
	ConfigFile  string
	Files       []string
	Channel     string
	Scheme      string
	Granularity string
	Year        int
	TopN        int
	ReportName  string
	ReportType  []string
	Dir         string
	Analytics   bool
	Summary     bool
}
