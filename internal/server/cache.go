package server

import (
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/mj1618/winctl/internal/menu"
	"github.com/mj1618/winctl/internal/model"
	"golang.org/x/sync/singleflight"
)

// MenuCache keeps recently built menu trees keyed by window handle.
// Concurrent requests for the same window share one rebuild.
type MenuCache struct {
	lru   *expirable.LRU[model.Handle, *model.MenuChildren]
	group singleflight.Group
}

// NewMenuCache creates a new cache holding at most size trees for ttl.
// A ttl of 0 disables caching.
func NewMenuCache(size int, ttl time.Duration) *MenuCache {
	c := &MenuCache{}
	if ttl > 0 {
		c.lru = expirable.NewLRU[model.Handle, *model.MenuChildren](size, nil, ttl)
	}
	return c
}

// Tree returns the cached tree for t's window if it has not expired,
// otherwise rebuilds it from the OS.
func (c *MenuCache) Tree(t *menu.Tree) *model.MenuChildren {
	if c.lru != nil {
		if root, ok := c.lru.Get(t.Window()); ok {
			return root
		}
	}
	v, _, _ := c.group.Do(strconv.FormatUint(uint64(t.Window()), 10), func() (interface{}, error) {
		root := t.Build()
		if c.lru != nil {
			c.lru.Add(t.Window(), root)
		}
		return root, nil
	})
	return v.(*model.MenuChildren)
}

// Invalidate drops the tree for one window.
func (c *MenuCache) Invalidate(h model.Handle) {
	if c.lru != nil {
		c.lru.Remove(h)
	}
}

// InvalidateAll clears the entire cache.
func (c *MenuCache) InvalidateAll() {
	if c.lru != nil {
		c.lru.Purge()
	}
}

// Len returns the number of live entries.
func (c *MenuCache) Len() int {
	if c.lru == nil {
		return 0
	}
	return c.lru.Len()
}
