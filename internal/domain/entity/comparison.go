package entity

// TopMover identifica a descrição de recusa de usuário que mais cresceu
// entre dois períodos adjacentes.
type TopMover struct {
	Description string `json:"description"`
	Increase    int    `json:"increase"`
}

// ComparisonResult liga dois BucketKPIs cronologicamente adjacentes.
type ComparisonResult struct {
	PreviousPeriod string `json:"previous_period"`
	CurrentPeriod  string `json:"current_period"`

	SuccessRateChange float64 `json:"success_rate_change"`
	TotalChange       int     `json:"total_change"`
	BusinessChange    int     `json:"business_change"`
	UserChange        int     `json:"user_change"`
	TechnicalChange   int     `json:"technical_change"`

	// UserDeclineMover é preenchido apenas quando as recusas de usuário
	// aumentaram e alguma descrição teve crescimento positivo.
	UserDeclineMover *TopMover `json:"user_decline_mover,omitempty"`

	// Narrative é a mensagem de gatilho derivada dos deltas.
	Narrative string `json:"narrative,omitempty"`
}
