package model

// TicketType is a row of the ticket class catalog (adult, child,
// student, ...).  Reference data only; the booking core takes the unit
// price from the request and treats the catalog as a collaborator.
type TicketType struct {
	ID         string // ticket_types.id
	Name       string // ticket_types.name
	PriceUnits int64  // ticket_types.price_units
}

// Meal is a row of the meal add-on catalog.
type Meal struct {
	ID         string // meals.id
	Name       string // meals.name
	PriceUnits int64  // meals.price_units
}
