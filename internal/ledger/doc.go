// Package ledger holds the operations collaborators perform on the document:
// filing reports and maintaining the technician, project and vehicle lists.
//
// Writes are returned as [model.Mutation] values to be applied with
// store.Controller.Mutate, so every change is validated against the document
// it will actually modify:
//
//	doc, err := ctrl.Mutate(ledger.RenameVehicle("Van", "Van (1234-ABC)"))
//
// Reports reference technicians and vehicles by name. Renaming either one
// rewrites the matching reports; renaming a project does not, because reports
// only carry the project code.
package ledger
