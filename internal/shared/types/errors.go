package types

import "errors"

var (
	ErrNoTransactions = errors.New("ledger file contains no transaction rows")
	ErrNoValidRows    = errors.New("no valid transaction rows after normalization; check dates, channels and currencies")
)
