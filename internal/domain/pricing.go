package domain

// guestTubCombo is a bookable guests/tubs pairing
type guestTubCombo struct {
	Guests int
	Tubs   int
}

// priceTable lists the sellable guest/tub combinations with their price in
// HUF. Combinations outside this table cannot be reserved.
var priceTable = map[guestTubCombo]float64{
	{Guests: 1, Tubs: 1}: 24000,
	{Guests: 2, Tubs: 1}: 28000,
	{Guests: 2, Tubs: 2}: 44000,
	{Guests: 3, Tubs: 2}: 48000,
	{Guests: 3, Tubs: 3}: 62000,
	{Guests: 4, Tubs: 2}: 52000,
	{Guests: 4, Tubs: 3}: 66000,
	{Guests: 5, Tubs: 3}: 70000,
	{Guests: 6, Tubs: 3}: 74000,
}

// PriceFor returns the price for a guests/tubs combination and whether the
// combination is sellable at all
func PriceFor(guests, tubs int) (float64, bool) {
	price, ok := priceTable[guestTubCombo{Guests: guests, Tubs: tubs}]
	return price, ok
}
