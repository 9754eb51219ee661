package status

import "sync"

// MetricMap lazily creates named metrics of type T
// Registration locks; callers cache the returned pointer and update it lock-free
type MetricMap[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

// NewMetricMap creates an empty map
func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{items: make(map[string]*T)}
}

// Get returns the metric for key, allocating it on first use
func (m *MetricMap[T]) Get(key string) *T {
	m.mu.RLock()
	ptr, ok := m.items[key]
	m.mu.RUnlock()
	if ok {
		return ptr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if ptr, ok := m.items[key]; ok {
		return ptr
	}
	ptr = new(T)
	m.items[key] = ptr
	return ptr
}

// Collect writes read(metric) into dst for every registered key
func (m *MetricMap[T]) Collect(dst map[string]float64, read func(*T) float64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for k, ptr := range m.items {
		dst[k] = read(ptr)
	}
}
