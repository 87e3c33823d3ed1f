package bookings

import "fmt"

// offerCode formats the public offer identifier: OF-<year>-<sequence>, with
// the sequence zero-padded to four digits and restarting each year.
func offerCode(year, sequence int) string {
	return fmt.Sprintf("OF-%d-%04d", year, sequence)
}
