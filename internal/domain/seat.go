package domain

type SeatClass string

const (
	SeatClassEconomy SeatClass = "Economy"
	SeatClassPremium SeatClass = "Premium"
)

func (c SeatClass) Valid() bool {
	return c == SeatClassEconomy || c == SeatClassPremium
}

type SeatStatus string

const (
	SeatStatusAvailable SeatStatus = "Available"
	SeatStatusBooked    SeatStatus = "Booked"
)

type Seat struct {
	ID         int64
	FlightID   int64
	Number     int
	Class      SeatClass
	Status     SeatStatus
	PriceCents int64
}
