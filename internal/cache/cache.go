package cache

// Cache defines a keyed cache holding derived values
type Cache[T any] interface {
	// Get retrieves a value from the cache
	Get(key string) (T, bool)

	// Set stores a value in the cache
	Set(key string, data T)

	// Invalidate drops every cached value
	Invalidate()

	// Size returns the current number of items in the cache
	Size() int
}

var _ Cache[int] = (*Slot[int])(nil)
