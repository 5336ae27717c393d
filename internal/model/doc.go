// Package model defines the data structures shared by every fieldlog package.
//
// # Document
//
// The [Document] struct is the single aggregate synchronized between the
// local cache and the remote relay:
//
//	type Document struct {
//	    Technicians      []TechUser   // Credentialed technicians
//	    Projects         []string     // "12345 - Label"
//	    Vehicles         []string     // Free text
//	    Reports          []WorkReport // Newest first
//	    AdminPassword    string       // Shared admin secret
//	    ConnectionConfig string       // Remote mirror configuration (JSON)
//	}
//
// Reports reference technicians and vehicles by name, not by id. Renaming
// either one must rewrite the reports that carry the old name.
//
// # Mutations
//
// A [Mutation] turns one document into the next. Every change to the
// document goes through store.Controller.Mutate with a Mutation.
package model
