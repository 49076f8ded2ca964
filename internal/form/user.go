package form

// UserCreateRules validates the user create form. The type and team fields
// are passthroughs: cleaned but checked later against their enum or the
// selected team.
func UserCreateRules() []Field {
	return []Field{
		{Name: "user_id", Rules: []Predicate{
			Required("User ID must be specified."),
			Alphanumeric("User ID has non-alphanumeric characters."),
		}},
		{Name: "password", Rules: []Predicate{
			MinLength(6, "Password must be of minimum length 6."),
		}},
		{Name: "first_name", Rules: []Predicate{
			Required("First name must be specified."),
			Alphabetic("First name has non-alphabetic characters."),
		}},
		{Name: "last_name", Rules: []Predicate{
			Required("Last name must be specified."),
			Alphabetic("Last name has non-alphabetic characters."),
		}},
		{Name: "email", Rules: []Predicate{
			MinLength(3, "Email must be specified."),
			Email("Invalid email."),
		}},
		{Name: "mobile", Rules: []Predicate{
			ExactLength(10, "Invalid mobile number."),
		}},
		{Name: "type"},
		{Name: "team"},
	}
}

// UserUpdateRules validates the user update form, which only exposes
// contact and assignment fields.
func UserUpdateRules() []Field {
	return []Field{
		{Name: "email", Rules: []Predicate{
			MinLength(3, "Email must be specified."),
			Email("Invalid email."),
		}},
		{Name: "mobile", Rules: []Predicate{
			ExactLength(10, "Invalid mobile number."),
		}},
		{Name: "type"},
		{Name: "team"},
	}
}
