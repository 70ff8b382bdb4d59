package server

import (
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru"
)

// response is a rendered reply kept in the result cache.
type response struct {
	status      int
	contentType string
	body        []byte
}

// resultCache remembers rendered replies keyed by route and request body.
// Parsing is deterministic, so equal inputs always produce equal replies.
type resultCache struct {
	arc *lru.ARCCache
}

func newResultCache(size int) (*resultCache, error) {
	arc, err := lru.NewARC(size)
	if err != nil {
		return nil, err
	}
	return &resultCache{arc: arc}, nil
}

func cacheKey(route string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(route))
	h.Write([]byte{0})
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

func (rc *resultCache) get(key string) (response, bool) {
	v, ok := rc.arc.Get(key)
	if !ok {
		return response{}, false
	}
	return v.(response), true
}

func (rc *resultCache) add(key string, r response) {
	rc.arc.Add(key, r)
}

func (rc *resultCache) len() int {
	return rc.arc.Len()
}
