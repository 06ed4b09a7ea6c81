package rules

// MaxBuys is the per-player buy allowance for a whole game.
const MaxBuys = 7

// buyPenaltyPoints is deducted from a round score when the player still
// holds unused buys.
const buyPenaltyPoints = 10

// RemainingBuys returns how many buys a player has left, clamped at zero.
func RemainingBuys(buysUsed int) int {
	remaining := MaxBuys - buysUsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// BuyPenalty returns the round-score adjustment for unused buys.
func BuyPenalty(buysUsed int) int {
	if RemainingBuys(buysUsed) > 0 {
		return buyPenaltyPoints
	}
	return 0
}

// ApplyRemainingBuysPenalty adjusts a round score by the unused-buy
// discount: 50 points with buys left becomes 40.
func ApplyRemainingBuysPenalty(score, buysUsed int) int {
	return score - BuyPenalty(buysUsed)
}

// BuyTotalCards is how many cards a resolved buy grants: the discard top
// plus extras, one more for the current player than for anyone else.
func BuyTotalCards(isCurrentPlayer bool) int {
	if isCurrentPlayer {
		return 4
	}
	return 3
}
