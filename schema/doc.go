// Package schema holds the declarative configuration that drives CRUD handlers:
// table definitions used to build insert payloads and handler options used to
// build lookup conditions.
//
// Configuration is loaded once at handler construction and treated as
// immutable. Lookup conditions are a closed sum type (SimpleCondition,
// FallbackCondition) validated while loading, so consumers switch on the Go
// type instead of string tags.
//
// Example:
//
//	tables, err := schema.LoadTablesFile("config/tables.yaml")
//	if err != nil {
//		return err
//	}
//	usersCfg, err := schema.LoadHandlerConfigFile("config/users.yaml")
//	if err != nil {
//		return err
//	}
package schema
