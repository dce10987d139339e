package models

// LotteryResult is the outcome of a range bet returned to the caller.
// NetGain always equals Payout - Stake and matches the amount on the
// transaction log entry the bet produced.
type LotteryResult struct {
	Drawn      int
	Won        bool
	LowBound   int
	HighBound  int
	Stake      int64
	Multiplier float64
	Payout     int64
	NetGain    int64
	NewBalance int64
}
