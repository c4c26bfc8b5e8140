// Package store persists named collections of records. The default backend
// keeps one JSON document per collection on disk; a MongoDB backend implements
// the same interface so the workflow layer never knows which one it talks to.
package store

import "context"

// Collection names. The file backend also uses them as the top-level key of
// the stored document: {"users": [...]}.
const (
	Users     = "users"
	Feedbacks = "feedbacks"
	Responses = "responses"
)

// Store reads and rewrites whole collections. out must be a pointer to a
// slice of the record type; Write replaces the collection with the given
// slice. Each call is internally serialized per collection, so a repository
// doing read-modify-write under its own lock never observes a torn document.
type Store interface {
	Ensure(ctx context.Context, collection string) error
	Read(ctx context.Context, collection string, out any) error
	Write(ctx context.Context, collection string, records any) error
}
