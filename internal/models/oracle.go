package models

import (
	"context"
	"math/big"
)

// TokenBalanceOracle resolves a wallet address to its GHOX balance.
type TokenBalanceOracle interface {
	// GetBalance returns the balance of the address in the token's smallest
	// unit (18-decimal fixed point). Callers treat a failed read as a zero
	// balance, which fails closed for token-gated drops.
	GetBalance(ctx context.Context, address string) (*big.Int, error)
}
