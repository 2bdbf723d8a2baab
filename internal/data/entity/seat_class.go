package entity

type SeatClass string

const (
	SeatClassEconomy        SeatClass = "economy"
	SeatClassPremiumEconomy SeatClass = "premium-economy"
	SeatClassBusiness       SeatClass = "business"
	SeatClassFirstClass     SeatClass = "first-class"
)

type SeatClassInfo struct {
	Multiplier int64
	Prefix     string
}

var seatClassTable = map[SeatClass]SeatClassInfo{
	SeatClassEconomy:        {Multiplier: 1, Prefix: "E"},
	SeatClassPremiumEconomy: {Multiplier: 2, Prefix: "P"},
	SeatClassBusiness:       {Multiplier: 3, Prefix: "B"},
	SeatClassFirstClass:     {Multiplier: 4, Prefix: "A"},
}

func (c SeatClass) Known() bool {
	_, ok := seatClassTable[c]
	return ok
}

// Info returns the price multiplier and seat-code prefix for the class.
// Unknown identifiers get the economy values, matching the behavior the
// booking flow has always had; callers that want to reject instead should
// check Known first.
func (c SeatClass) Info() SeatClassInfo {
	if info, ok := seatClassTable[c]; ok {
		return info
	}
	return seatClassTable[SeatClassEconomy]
}
