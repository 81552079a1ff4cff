// Package validator builds declarative validation rules for posted fields.
//
// Each rule pairs a Check with a ValidationError carrying a translation key.
// Apply runs the rules and collects failures into ValidationErrors, which
// implements error:
//
//	err := validator.Apply(
//		validator.RequiredString("name", name),
//		validator.ValidEmail("email", email),
//		validator.InListString("role", role, []string{"admin", "editor"}),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//		msgs := verrs.Translate(func(e validator.ValidationError) string {
//			return e.Field + " " + e.Message
//		})
//	}
package validator
