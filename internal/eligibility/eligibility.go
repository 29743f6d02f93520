// Package eligibility decides which drops a viewer may see. It is a pure
// filter over candidate drops; callers supply the viewer's resolved token
// balance and position, and degrade both to nil when unknown.
package eligibility

import (
	"math/big"

	"github.com/ghostcoin/ghostdrop/internal/blockchain"
	"github.com/ghostcoin/ghostdrop/internal/models"
	"github.com/ghostcoin/ghostdrop/pkg/geo"
)

// smallestUnit is 10^18, the scale between whole-token thresholds and raw
// on-chain balances.
var smallestUnit = new(big.Int).Exp(big.NewInt(10), big.NewInt(blockchain.TokenDecimals), nil)

// VisibleDrops returns the subset of drops the viewer may see, preserving
// input order.
//
// A drop is included iff it passes both gates:
//   - token gate: no requirement, or the balance is known and meets the
//     requirement. An unknown balance (nil) fails every gated drop.
//   - distance gate: when both the viewer position and the drop coordinates
//     are known, the drop must be within maxDistanceMiles. An unknown
//     position skips the gate entirely so lists stay useful before location
//     permission is granted.
//
// Expiry is deliberately not a visibility gate; expired drops stay listed and
// are only refused at claim time.
func VisibleDrops(drops []*models.Drop, balance *big.Int, position *geo.Point, maxDistanceMiles float64) []*models.Drop {
	visible := make([]*models.Drop, 0, len(drops))
	for _, drop := range drops {
		if !TokenGateOpen(drop, balance) {
			continue
		}
		if !withinRange(drop, position, maxDistanceMiles) {
			continue
		}
		visible = append(visible, drop)
	}
	return visible
}

// TokenGateOpen reports whether the balance satisfies the drop's minimum
// token requirement. The human-entered threshold is in whole tokens and is
// scaled to the smallest unit before comparison; raw token counts are never
// compared against raw balances.
func TokenGateOpen(drop *models.Drop, balance *big.Int) bool {
	if drop.MinTokenRequired <= 0 {
		return true
	}
	if balance == nil {
		return false
	}
	required := new(big.Int).Mul(big.NewInt(drop.MinTokenRequired), smallestUnit)
	return balance.Cmp(required) >= 0
}

func withinRange(drop *models.Drop, position *geo.Point, maxDistanceMiles float64) bool {
	if position == nil || !drop.HasCoordinates() {
		return true
	}
	distance := geo.DistanceMiles(position.Latitude, position.Longitude, *drop.Latitude, *drop.Longitude)
	return distance <= maxDistanceMiles
}
