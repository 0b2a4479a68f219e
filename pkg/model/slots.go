package model

// Wire formats shared with the planner. These must round-trip exactly: dates
// are DD.MM.YYYY, slots are 12-hour labels with a leading zero.
const (
	DateLayout = "02.01.2006"
	SlotLayout = "03:04 PM"
)

// TimeSlots is the fixed daily schedule, in order, as the labels appear in
// the availability tracker.
var TimeSlots = []string{
	"10:00 AM", "11:00 AM", "12:00 PM", "01:00 PM", "02:00 PM",
	"03:00 PM", "04:00 PM", "05:00 PM", "06:00 PM", "07:00 PM",
	"08:00 PM", "09:00 PM", "10:00 PM",
}

// IsTimeSlot reports whether label is one of the fixed slot labels.
func IsTimeSlot(label string) bool {
	for _, s := range TimeSlots {
		if s == label {
			return true
		}
	}
	return false
}

// TablesNeeded is the number of capacity units a party consumes:
// ceil(partySize / guestsPerTable).
func TablesNeeded(partySize, guestsPerTable int) int {
	if partySize <= 0 {
		return 0
	}
	return (partySize + guestsPerTable - 1) / guestsPerTable
}
