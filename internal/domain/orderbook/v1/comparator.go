package orderbookv1

// bidBefore reports whether a outranks b on the bid side: higher price first,
// ties broken by earlier delivery start. Prices compare exactly through
// decimal.Cmp, never by float tolerance.
func bidBefore(a, b TradeOrder) bool {
	switch a.PriceEurMWh.Cmp(b.PriceEurMWh) {
	case 1:
		return true
	case -1:
		return false
	}
	return a.DeliveryStart.Before(b.DeliveryStart)
}

// askBefore reports whether a outranks b on the ask side: lower price first,
// ties broken by earlier delivery start.
func askBefore(a, b TradeOrder) bool {
	switch a.PriceEurMWh.Cmp(b.PriceEurMWh) {
	case -1:
		return true
	case 1:
		return false
	}
	return a.DeliveryStart.Before(b.DeliveryStart)
}
