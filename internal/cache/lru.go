package cache

// entry is both the map value and a link in the recency ring. The ring is
// circular around a sentinel: sentinel.next is the newest entry and
// sentinel.prev the oldest.
type entry[K comparable, V any] struct {
	key        K
	value      V
	prev, next *entry[K, V]
}

type ring[K comparable, V any] struct {
	sentinel entry[K, V]
}

func (r *ring[K, V]) init() {
	r.sentinel.prev = &r.sentinel
	r.sentinel.next = &r.sentinel
}

func (r *ring[K, V]) empty() bool { return r.sentinel.next == &r.sentinel }

// touch moves e, linked or not, to the newest position.
func (r *ring[K, V]) touch(e *entry[K, V]) {
	if e.next != nil {
		r.detach(e)
	}
	e.prev = &r.sentinel
	e.next = r.sentinel.next
	r.sentinel.next.prev = e
	r.sentinel.next = e
}

func (r *ring[K, V]) detach(e *entry[K, V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.prev, e.next = nil, nil
}

// oldest returns the least recently touched entry, or nil.
func (r *ring[K, V]) oldest() *entry[K, V] {
	if r.empty() {
		return nil
	}
	return r.sentinel.prev
}
