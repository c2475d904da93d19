package engine

// CodeTables agrupa as tabelas de response codes usadas pelo classificador.
// As tabelas são injetadas (imutáveis após a construção) para permitir
// substituição em testes; use DefaultCodeTables para o conjunto do adquirente.
type CodeTables struct {
	// UserDeclineIPG e UserDeclinePOS são os conjuntos de códigos tratados
	// como recusa do usuário. O conjunto do IPG difere do de POS/ATM: no
	// gateway não existem códigos de PIN, e "57" (transação não permitida
	// ao portador) chega como recusa do próprio cliente.
	UserDeclineIPG map[string]bool
	UserDeclinePOS map[string]bool

	// Technical mapeia código técnico → descrição padrão do switch.
	Technical map[string]string
}

// DefaultCodeTables devolve as tabelas padrão (ISO 8583) do adquirente.
func DefaultCodeTables() CodeTables {
	return CodeTables{
		UserDeclineIPG: map[string]bool{
			"51": true, // insufficient funds
			"54": true, // expired card
			"57": true, // transaction not permitted to cardholder
			"61": true, // exceeds amount limit
			"65": true, // exceeds frequency limit
		},
		UserDeclinePOS: map[string]bool{
			"38": true, // allowable PIN tries exceeded
			"51": true, // insufficient funds
			"54": true, // expired card
			"55": true, // incorrect PIN
			"61": true, // exceeds withdrawal amount limit
			"65": true, // exceeds withdrawal frequency limit
			"75": true, // PIN tries exceeded
		},
		Technical: map[string]string{
			"68": "Response received too late",
			"90": "Cutoff is in progress",
			"91": "Issuer or switch is inoperative",
			"92": "Financial institution cannot be found for routing",
			"94": "Duplicate transmission",
			"96": "System malfunction",
		},
	}
}
