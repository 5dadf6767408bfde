package flights

import (
	"fmt"
	"strings"
)

// FormatOffers renders a short human-readable summary of search results for
// the chat reply. Call only with at least one offer.
func FormatOffers(q Query, offers []Offer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here are the best flights from %s to %s on %s:\n", q.From, q.To, q.Date)
	for i, o := range offers {
		fmt.Fprintf(&b, "%d. %.2f %s", i+1, o.Price, o.Currency)
		if !o.DepartureTime.IsZero() {
			fmt.Fprintf(&b, " departs %s", o.DepartureTime.Format("Mon 2 Jan 15:04"))
		}
		if !o.ArrivalTime.IsZero() {
			fmt.Fprintf(&b, ", arrives %s", o.ArrivalTime.Format("15:04"))
		}
		if o.Carrier != "" {
			fmt.Fprintf(&b, " (%s)", o.Carrier)
		}
		b.WriteString("\n")
	}
	b.WriteString("Let me know if you want to search different dates or cities!")
	return b.String()
}
