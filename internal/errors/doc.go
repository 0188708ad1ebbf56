// Package errors provides structured, actionable error messages for roster.
//
// Every error carries a code (e.g. "E101") that maps to a registered
// template: a category, a short message and a longer explanation. Callers
// attach detail and a fix suggestion fluently:
//
//	err := errors.New("E101").
//	    WithDetail(`path "/users" is registered by "users" and "people"`).
//	    WithSuggestion("Give every route a distinct path")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E101: Duplicate route path
//	//
//	//   path "/users" is registered by "users" and "people"
//	//
//	//   Hint: Give every route a distinct path
//
// # Error Categories
//
//   - route: route table construction and navigation
//   - config: configuration loading and validation
//   - store: search-criteria store lookups and payloads
package errors
