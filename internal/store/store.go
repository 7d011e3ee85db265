// Package store defines the document store the site persists its content in.
//
// A store holds named collections of JSON documents. Every backend assigns
// document Ids itself on insert and reports failures with the sentinel
// errors below so callers can tell a retryable outage from a refusal.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned by Get and Replace when the document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrPermissionDenied wraps authentication/ACL/read-only refusals from the backend.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrUnavailable wraps network and I/O failures. Retrying may succeed.
	ErrUnavailable = errors.New("store unavailable")
	// ErrNotConfigured is returned when no backend has been configured.
	ErrNotConfigured = errors.New("store not configured")
)

// Document is a stored JSON document and its store-assigned Id.
type Document struct {
	ID   string
	Data []byte
}

// DocumentStore is the storage collaborator used by every feature of the site.
type DocumentStore interface {
	// List returns every document in the collection, oldest first.
	List(ctx context.Context, collection string) ([]Document, error)
	// Get returns one document or ErrNotFound.
	Get(ctx context.Context, collection, id string) (Document, error)
	// Insert adds a document and returns its new Id.
	Insert(ctx context.Context, collection string, data []byte) (string, error)
	// InsertMany adds all documents in one atomic batch.
	InsertMany(ctx context.Context, collection string, data [][]byte) ([]string, error)
	// Replace overwrites an existing document. Fields absent from data are gone afterwards.
	Replace(ctx context.Context, collection, id string, data []byte) error
	// Delete removes a document. Deleting an unknown Id is not an error.
	Delete(ctx context.Context, collection, id string) error

	Ping(ctx context.Context) error
	Close() error
}

// NewID returns a fresh document Id.
func NewID() string {
	return uuid.NewString()
}
