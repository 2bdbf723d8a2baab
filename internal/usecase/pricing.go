package usecase

// ComputeTotal prices a booking: class multiplier times the flight's base
// price times the manifest size. Integer arithmetic, no rounding.
func ComputeTotal(basePrice, multiplier int64, passengerCount int) int64 {
	return multiplier * basePrice * int64(passengerCount)
}
