package flights

import "strings"

// cityCodes maps a handful of supported cities to their IATA metro codes for
// providers that refuse free-text locations. Lookup is case and whitespace
// insensitive; anything else is unresolved.
var cityCodes = map[string]string{
	"london":  "LON",
	"dubai":   "DXB",
	"paris":   "PAR",
	"newyork": "NYC",
	"rome":    "ROM",
	"madrid":  "MAD",
	"berlin":  "BER",
	"tokyo":   "TYO",
}

// ResolveCity returns the IATA code for a free-text city name, or false when
// the city is not in the table.
func ResolveCity(name string) (string, bool) {
	key := strings.ToLower(strings.Join(strings.Fields(name), ""))
	code, ok := cityCodes[key]
	return code, ok
}
