package form

// TeamCreateRules validates the team create form.
func TeamCreateRules() []Field {
	return []Field{
		{Name: "team_name", Rules: []Predicate{
			Required("Team name must be specified"),
			Alphabetic("Team name has non-alphabetic characters."),
		}},
		{Name: "description", Rules: []Predicate{
			Required("Team description must be specified"),
		}},
	}
}

// TeamUpdateRules validates the team update form. Unlike create, the name is
// only required, not restricted to alphabetic characters.
func TeamUpdateRules() []Field {
	return []Field{
		{Name: "team_name", Rules: []Predicate{
			Required("Team name must be specified"),
		}},
		{Name: "description", Rules: []Predicate{
			Required("Team description must be specified"),
		}},
	}
}
