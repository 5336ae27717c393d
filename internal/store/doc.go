// Package store owns the application document.
//
// A [Controller] is the only writer of the document. Every transition, local
// or remote, runs under one mutex and is persisted to the [Cache] before it
// becomes current:
//
//	ctrl := store.New(cache.New(db))
//	doc, err := ctrl.Initialize(ctx)
//	doc, err = ctrl.Mutate(func(d model.Document) (model.Document, error) {
//	    d.Vehicles = append(d.Vehicles, "Van")
//	    return d, nil
//	})
//
// # Remote Mirror
//
// When the document carries a connection configuration the controller runs a
// remote.Mirror. Local mutations are pushed in order; remote snapshots
// replace the whole document except its connection configuration, which is
// always the local one. Remote snapshots are never pushed back.
package store
