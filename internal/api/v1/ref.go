// Package v1 is the wire contract between the remote mirror and the relay.
// The messages and the service are generated from api/v1/document.proto.
package v1

const (
	// DefaultCollection and DefaultDocument form the fixed identity of the
	// one shared document.
	DefaultCollection = "workerApp"
	DefaultDocument   = "main"
)

// NewRef returns the reference of the shared document in project.
func NewRef(project string) *DocumentRef {
	return &DocumentRef{Project: project, Collection: DefaultCollection, Document: DefaultDocument}
}

// Key returns the storage key for the reference.
func (x *DocumentRef) Key() string {
	return x.GetProject() + "/" + x.GetCollection() + "/" + x.GetDocument()
}
