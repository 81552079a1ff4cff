package crud

import "github.com/dmitrymomot/crudkit/schema"

// BuildInsert filters post into the insert payload for tableKey.
//
// Only fields declared by the table config are copied, so undeclared input
// never reaches persistence. A declared field is included when post holds it
// as a non-empty string and it is not the table identifier. Unknown tables
// yield an empty map.
func BuildInsert(tables schema.TableConfig, tableKey string, post PostData) map[string]string {
	insert := map[string]string{}

	table, ok := tables.Table(tableKey)
	if !ok {
		return insert
	}

	for _, field := range table.Fields {
		if field == table.Identifier {
			continue
		}
		// Empty fields are skipped so the database applies its defaults.
		// Non-string values (lists, maps) never map to a column.
		value, ok := post.String(field)
		if !ok || value == "" {
			continue
		}
		insert[field] = value
	}
	return insert
}

// BuildLookupConditions binds the active search term to the configured lookup
// conditions.
//
// Without a configured search queue, or when post holds no non-empty string
// under it, the result is empty. Otherwise every condition is cloned:
// simple conditions get the term as their queue; fallback conditions get it on
// their then and else branches while the if branch keeps its configured queue
// (nil by default, meaning a presence check). cfg is never modified.
func BuildLookupConditions(cfg schema.HandlerConfig, post PostData) schema.Conditions {
	conditions := schema.Conditions{}

	if !cfg.HasSearchQueue() {
		return conditions
	}
	queue, ok := post.String(cfg.SearchQueue)
	if !ok || queue == "" {
		return conditions
	}

	for name, cond := range cfg.Lookup.Conditions.Clone() {
		switch c := cond.(type) {
		case schema.FallbackCondition:
			c.Then = c.Then.WithQueue(queue)
			c.Else = c.Else.WithQueue(queue)
			conditions[name] = c
		case schema.SimpleCondition:
			conditions[name] = c.WithQueue(queue)
		}
	}
	return conditions
}
