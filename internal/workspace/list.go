package workspace

import "sync"

// Keyed is a record with a unique id.
type Keyed interface {
	Key() int
}

// List is the in-memory copy of one manager's records.
type List[T Keyed] struct {
	mu     sync.Mutex
	items  []T
	loaded bool
}

// Load replaces the list with freshly fetched items.
func (l *List[T]) Load(items []T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append([]T(nil), items...)
	l.loaded = true
}

// Items returns a copy of the list and whether it was ever loaded.
func (l *List[T]) Items() ([]T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]T(nil), l.items...), l.loaded
}

// Prepend puts a newly created record first.
func (l *List[T]) Prepend(item T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append([]T{item}, l.items...)
}

// Replace swaps the record with the same id in place.
func (l *List[T]) Replace(item T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.items {
		if l.items[i].Key() == item.Key() {
			l.items[i] = item
			return true
		}
	}
	return false
}

// Remove drops the record with id.
func (l *List[T]) Remove(id int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.items {
		if l.items[i].Key() == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

// Find returns the record with id.
func (l *List[T]) Find(id int) (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, item := range l.items {
		if item.Key() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Update applies fn to the record with id.
func (l *List[T]) Update(id int, fn func(*T)) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.items {
		if l.items[i].Key() == id {
			fn(&l.items[i])
			return true
		}
	}
	return false
}
