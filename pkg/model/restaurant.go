package model

// Restaurant is static reference data. The name is the natural key; no
// surrogate id exists. The core never mutates these rows.
type Restaurant struct {
	Name         string   `json:"name" bson:"_id"`
	Location     string   `json:"location" bson:"location"`
	Address      string   `json:"address" bson:"address"`
	Phone        string   `json:"phone" bson:"phone"`
	Cuisines     []string `json:"cuisines" bson:"cuisines"`
	ApproxCost   int      `json:"approx_cost" bson:"approx_cost"`
	Rating       float64  `json:"rating" bson:"rating"`
	MaxPartySize int      `json:"max_party_size" bson:"max_party_size"`
}

// RestaurantAvailability is a search result row: a restaurant together with
// the number of tables still open at the requested slot.
type RestaurantAvailability struct {
	Name            string `json:"name"`
	Location        string `json:"location"`
	Address         string `json:"address"`
	Phone           string `json:"phone"`
	TablesAvailable int    `json:"tables_available"`
}
