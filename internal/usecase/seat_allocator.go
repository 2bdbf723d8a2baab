package usecase

import "fmt"

// AllocateSeats computes the next block of seat codes for a partition given
// how many seats it already holds: priorSeats+1 through
// priorSeats+passengerCount, formatted "{prefix}-{n}". The function is pure;
// keeping priorSeats stable while the booking is persisted is the caller's
// job.
func AllocateSeats(priorSeats, passengerCount int, prefix string) []string {
	seats := make([]string, passengerCount)
	for i := range seats {
		seats[i] = fmt.Sprintf("%s-%d", prefix, priorSeats+i+1)
	}
	return seats
}
