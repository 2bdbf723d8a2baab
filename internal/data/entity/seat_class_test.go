package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSeatClassInfo(t *testing.T) {
	tests := []struct {
		class      SeatClass
		multiplier int64
		prefix     string
	}{
		{SeatClassEconomy, 1, "E"},
		{SeatClassPremiumEconomy, 2, "P"},
		{SeatClassBusiness, 3, "B"},
		{SeatClassFirstClass, 4, "A"},
	}

	for _, tt := range tests {
		t.Run(string(tt.class), func(t *testing.T) {
			info := tt.class.Info()
			assert.Equal(t, tt.multiplier, info.Multiplier)
			assert.Equal(t, tt.prefix, info.Prefix)
			assert.True(t, tt.class.Known())
		})
	}
}

func TestSeatClassInfo_UnknownFallsBackToEconomy(t *testing.T) {
	unknown := SeatClass("super-deluxe")

	assert.False(t, unknown.Known())

	info := unknown.Info()
	assert.Equal(t, int64(1), info.Multiplier)
	assert.Equal(t, "E", info.Prefix)
}

func TestPartitionKey(t *testing.T) {
	flightRef := uuid.MustParse("3f2c1a84-0d7e-4b4f-9f6a-1c2b3d4e5f60")
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	p := Partition{FlightRef: flightRef, JourneyDate: date, SeatClass: SeatClassBusiness}
	assert.Equal(t, "3f2c1a84-0d7e-4b4f-9f6a-1c2b3d4e5f60:2026-09-15:business", p.Key())
}

func TestPartitionJourneyKey_SharedAcrossClasses(t *testing.T) {
	flightRef := uuid.New()
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	economy := Partition{FlightRef: flightRef, JourneyDate: date, SeatClass: SeatClassEconomy}
	business := Partition{FlightRef: flightRef, JourneyDate: date, SeatClass: SeatClassBusiness}

	assert.NotEqual(t, economy.Key(), business.Key())
	assert.Equal(t, economy.JourneyKey(), business.JourneyKey())

	otherDay := Partition{FlightRef: flightRef, JourneyDate: date.AddDate(0, 0, 1), SeatClass: SeatClassEconomy}
	assert.NotEqual(t, economy.JourneyKey(), otherDay.JourneyKey())
}

func TestPartitionKey_UnknownClassKeepsOwnPartition(t *testing.T) {
	flightRef := uuid.New()
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	known := Partition{FlightRef: flightRef, JourneyDate: date, SeatClass: SeatClassEconomy}
	unknown := Partition{FlightRef: flightRef, JourneyDate: date, SeatClass: SeatClass("super-deluxe")}

	assert.NotEqual(t, known.Key(), unknown.Key())
}
