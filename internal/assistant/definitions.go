package assistant

// Definitions returns the schema metadata for every registered tool, in the
// shape chat-completion APIs expect for function calling.
func Definitions() []Definition {
	dateProp := Property{Type: "string", Description: "The date for the reservation, e.g., '30.10.2025'."}
	slotProp := Property{Type: "string", Description: "The desired time slot, e.g., '07:00 PM'."}

	return []Definition{
		{
			Name:        ToolAvailableRestaurants,
			Description: "Get a list of available restaurants based on date, time, and party size.",
			Parameters: Parameters{
				Type: "object",
				Properties: map[string]Property{
					"date":       dateProp,
					"time_slot":  slotProp,
					"party_size": {Type: "integer", Description: "The number of guests in the party."},
				},
				Required: []string{"date", "time_slot", "party_size"},
			},
		},
		{
			Name:        ToolBookTable,
			Description: "Book a table at a specific restaurant.",
			Parameters: Parameters{
				Type: "object",
				Properties: map[string]Property{
					"customer_name":    {Type: "string", Description: "Full name of the customer."},
					"customer_email":   {Type: "string", Description: "Email address of the customer."},
					"customer_phone":   {Type: "string", Description: "Phone number of the customer."},
					"restaurant_name":  {Type: "string", Description: "The name of the restaurant."},
					"party_size":       {Type: "integer", Description: "The number of guests."},
					"date":             dateProp,
					"time_slot":        slotProp,
					"special_requests": {Type: "string", Description: "Any special requests for the booking."},
				},
				Required: []string{"customer_name", "customer_email", "customer_phone", "restaurant_name", "party_size", "date", "time_slot"},
			},
		},
		{
			Name:        ToolBookingDetails,
			Description: "Retrieve the details of an existing booking using a booking ID.",
			Parameters: Parameters{
				Type: "object",
				Properties: map[string]Property{
					"booking_id": {Type: "string", Description: "The unique ID of the booking."},
					"date":       {Type: "string", Description: "The date of the booking, e.g., '30.10.2025'."},
				},
				Required: []string{"booking_id", "date"},
			},
		},
		{
			Name:        ToolFindBookings,
			Description: "Find a customer's bookings on a date by name, email, and phone.",
			Parameters: Parameters{
				Type: "object",
				Properties: map[string]Property{
					"date":           {Type: "string", Description: "The date to search, e.g., '30.10.2025'."},
					"customer_name":  {Type: "string", Description: "Full name of the customer."},
					"customer_email": {Type: "string", Description: "Email address of the customer."},
					"customer_phone": {Type: "string", Description: "Phone number of the customer."},
				},
				Required: []string{"date", "customer_name", "customer_email", "customer_phone"},
			},
		},
		{
			Name:        ToolBookableSlots,
			Description: "List the time slots still open for new reservations on a date.",
			Parameters: Parameters{
				Type: "object",
				Properties: map[string]Property{
					"date": {Type: "string", Description: "The date to check, e.g., '30.10.2025'."},
				},
				Required: []string{"date"},
			},
		},
		{
			Name:        ToolCancelBooking,
			Description: "Cancel an existing booking.",
			Parameters: Parameters{
				Type: "object",
				Properties: map[string]Property{
					"booking_id": {Type: "string", Description: "The unique ID of the booking to cancel."},
					"date":       {Type: "string", Description: "The date of the booking, e.g., '30.10.2025'."},
				},
				Required: []string{"booking_id", "date"},
			},
		},
		{
			Name:        ToolModifyBooking,
			Description: "Replace an existing booking with a new reservation. Books the new reservation first, then cancels the old one.",
			Parameters: Parameters{
				Type: "object",
				Properties: map[string]Property{
					"booking_id":       {Type: "string", Description: "The unique ID of the booking to replace."},
					"current_date":     {Type: "string", Description: "The date of the existing booking, e.g., '30.10.2025'."},
					"customer_name":    {Type: "string", Description: "Full name of the customer."},
					"customer_email":   {Type: "string", Description: "Email address of the customer."},
					"customer_phone":   {Type: "string", Description: "Phone number of the customer."},
					"restaurant_name":  {Type: "string", Description: "The name of the restaurant for the new reservation."},
					"party_size":       {Type: "integer", Description: "The number of guests."},
					"date":             {Type: "string", Description: "The new reservation date, e.g., '30.10.2025'."},
					"time_slot":        slotProp,
					"special_requests": {Type: "string", Description: "Any special requests for the booking."},
				},
				Required: []string{"booking_id", "current_date", "customer_name", "customer_email", "customer_phone", "restaurant_name", "party_size", "date", "time_slot"},
			},
		},
	}
}
