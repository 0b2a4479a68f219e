package model

// AvailabilityRow is one restaurant's table counts for a date, keyed by slot
// label. Every count stays >= 0 at rest; a write that would drive a cell
// negative is rejected before it is applied.
type AvailabilityRow struct {
	Name     string         `json:"name" bson:"name"`
	Location string         `json:"location" bson:"location"`
	Address  string         `json:"address" bson:"address"`
	Phone    string         `json:"phone" bson:"phone"`
	Slots    map[string]int `json:"slots" bson:"slots"`
}

// AvailabilityMatrix is a date's full table-count matrix, keyed by restaurant
// name.
type AvailabilityMatrix map[string]*AvailabilityRow

// SeedRow builds a fresh availability row for a restaurant with every slot at
// the base capacity.
func SeedRow(r *Restaurant, baseCapacity int) *AvailabilityRow {
	slots := make(map[string]int, len(TimeSlots))
	for _, s := range TimeSlots {
		slots[s] = baseCapacity
	}
	return &AvailabilityRow{
		Name:     r.Name,
		Location: r.Location,
		Address:  r.Address,
		Phone:    r.Phone,
		Slots:    slots,
	}
}
