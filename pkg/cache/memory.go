// Package cache は generator.ImageCacher を満たす素朴なインメモリTTLキャッシュです。
// File API の URI を1ランの全フレームで使い回すための最小実装で、
// プロセス寿命を超えるものは何も保持しません。
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     any
	expiresAt time.Time // ゼロ値は無期限
}

// MemoryCache はミューテックスで保護されたインメモリキャッシュです。
type MemoryCache struct {
	mu    sync.RWMutex
	items map[string]entry
}

// New は空の MemoryCache を作成します。
func New() *MemoryCache {
	return &MemoryCache{items: make(map[string]entry)}
}

// Get は、指定されたキーに紐づくアイテムを取得します。
// 期限切れのアイテムは存在しないものとして扱います。
func (c *MemoryCache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

// Set は、指定されたキーと値、有効期限でアイテムを保存します。
// d が 0 以下の場合は無期限で保持します。
func (c *MemoryCache) Set(key string, value any, d time.Duration) {
	e := entry{value: value}
	if d > 0 {
		e.expiresAt = time.Now().Add(d)
	}

	c.mu.Lock()
	c.items[key] = e
	c.mu.Unlock()
}
