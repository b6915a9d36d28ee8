package cache

import "time"

// Cache is the manager surface consumed by the CLI and other presentation
// code. *Manager implements it.
type Cache interface {
	GetRaw(key string) (string, bool)
	SetRaw(key, payload string, ttl time.Duration) error
	Delete(key string) (bool, error)
	DeletePrefix(prefix string) (int64, error)
	Contains(key string) bool
	Clear() error
	Prune() (int64, error)
	Vacuum() error
	InvalidateAll()
	Stats() Stats
	Close() error
}

var _ Cache = (*Manager)(nil)
