package redis

const (
	// KeyPrefixDocument is the prefix for document keys
	KeyPrefixDocument = "pitch:doc:"
	// KeyPrefixCollection is the prefix for the sorted sets indexing each collection
	KeyPrefixCollection = "pitch:coll:"
)

// DocumentKey returns the Redis key holding a document's JSON
func DocumentKey(collection, id string) string {
	return KeyPrefixDocument + collection + ":" + id
}

// CollectionKey returns the Redis key of the sorted set of a collection's IDs.
// Members are scored by insertion time so List keeps insertion order.
func CollectionKey(collection string) string {
	return KeyPrefixCollection + collection
}
