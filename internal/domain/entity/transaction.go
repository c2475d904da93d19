package entity

import "time"

// Channel identifica o tipo de originação da transação.
type Channel string

const (
	ChannelPOS   Channel = "POS"
	ChannelATM   Channel = "ATM"
	ChannelIPG   Channel = "IPG"
	ChannelOther Channel = "OTHER"
)

// Scheme identifica a bandeira do cartão (card network).
type Scheme string

const (
	SchemeVisa       Scheme = "VISA"
	SchemeMastercard Scheme = "MASTERCARD"
	SchemeAmex       Scheme = "AMEX"
	SchemeOther      Scheme = "OTHER"
)

// Currency identifica a moeda de liquidação da transação.
type Currency string

const (
	CurrencyBTN     Currency = "BTN" // Ngultrum, moeda local para POS/ATM
	CurrencyUSD     Currency = "USD"
	CurrencyINR     Currency = "INR"
	CurrencyUnknown Currency = "UNKNOWN"
)

// RawRow é uma linha bruta do ledger, como entregue pelo leitor de arquivos.
// Os campos chegam sem tipagem confiável: datas podem ser seriais de planilha
// ou strings em formatos variados, valores podem ter separadores de milhar.
type RawRow struct {
	Date         string `json:"date"`
	Channel      string `json:"channel"`
	ResponseCode string `json:"response_code"`
	ResponseDesc string `json:"response_desc,omitempty"`
	Scheme       string `json:"scheme,omitempty"`
	MerchantID   string `json:"merchant_id,omitempty"`
	Amount       string `json:"amount,omitempty"`
	Currency     string `json:"currency,omitempty"`
	MCC          string `json:"mcc,omitempty"`
}

// Transaction é o registro canônico produzido pelo normalizador.
type Transaction struct {
	Timestamp    time.Time `json:"timestamp"`
	Channel      Channel   `json:"channel"`
	ResponseCode string    `json:"response_code"`
	ResponseDesc string    `json:"response_desc,omitempty"`
	Scheme       Scheme    `json:"scheme"`
	MerchantID   string    `json:"merchant_id,omitempty"`
	Amount       float64   `json:"amount"`
	Currency     Currency  `json:"currency"`
	MCC          string    `json:"mcc,omitempty"`
}
