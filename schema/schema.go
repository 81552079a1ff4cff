package schema

// IdentifierKey is the reserved entry of a table definition naming its primary-key field.
const IdentifierKey = "identifier"

// Table describes the input fields an entity table accepts.
type Table struct {
	// Identifier is the primary-key field. It is never part of an insert payload.
	Identifier string
	// Fields lists accepted input field names in declaration order.
	// The identifier may appear here; builders skip it.
	Fields []string
}

// Declares reports whether field is one of the table's accepted input fields.
func (t Table) Declares(field string) bool {
	for _, f := range t.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// TableConfig maps a logical table key to its definition.
// It is loaded once per handler and never mutated afterwards.
type TableConfig map[string]Table

// Table returns the definition for key.
func (c TableConfig) Table(key string) (Table, bool) {
	if c == nil {
		return Table{}, false
	}
	t, ok := c[key]
	return t, ok
}

// HandlerConfig carries the per-handler options recognized by the dispatcher.
type HandlerConfig struct {
	// SearchQueue names the request field carrying the active search term.
	// Empty means no search queue is configured.
	SearchQueue string
	Lookup      LookupConfig
}

// LookupConfig groups lookup options.
type LookupConfig struct {
	Conditions Conditions
}

// HasSearchQueue reports whether a search queue field is configured.
func (c HandlerConfig) HasSearchQueue() bool {
	return c.SearchQueue != ""
}
