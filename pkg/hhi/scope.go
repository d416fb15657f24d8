package hhi

// ExchangesInCountry maps exchange ID to exchange name for every exchange
// whose country field exactly equals the target code. The match is
// case-sensitive with no normalization. An empty result is a valid
// terminal state (zero market), not an error.
func ExchangesInCountry(exchanges []Exchange, country string) map[int]string {
	scope := make(map[int]string)
	for _, ix := range exchanges {
		if ix.Country == country {
			scope[ix.ID] = ix.Name
		}
	}
	return scope
}

// LANOwners maps exchange-LAN ID to its parent exchange ID, restricted to
// LANs whose exchange is in scope. LANs pointing at out-of-scope exchanges
// are silently dropped.
func LANOwners(lans []ExchangeLAN, scope map[int]string) map[int]int {
	owners := make(map[int]int)
	for _, lan := range lans {
		if _, ok := scope[lan.IXID]; ok {
			owners[lan.ID] = lan.IXID
		}
	}
	return owners
}
