package form

// TicketCreateRules validates the ticket create form. Level and team are
// passthroughs resolved against their enum and the team selector later.
func TicketCreateRules() []Field {
	return []Field{
		{Name: "ticket_id", Rules: []Predicate{
			Required("Ticket ID must be specified."),
			Alphanumeric("Ticket ID has non-alphanumeric characters."),
		}},
		{Name: "description", Rules: []Predicate{
			Required("Description must be specified."),
		}},
		{Name: "level"},
		{Name: "team"},
	}
}

// TicketUpdateRules validates the ticket update form. A worklog entry is
// mandatory on every update.
func TicketUpdateRules() []Field {
	return []Field{
		{Name: "status"},
		{Name: "level"},
		{Name: "team"},
		{Name: "worklog", Rules: []Predicate{
			Required("Worklog must be specified."),
		}},
	}
}
