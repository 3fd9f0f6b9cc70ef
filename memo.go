package main

import (
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultMemoEntries = 1024

// minifyMemo remembers results for identical file contents, which are common
// in trees with vendored or generated copies. It is safe for concurrent use.
type minifyMemo struct {
	profile CommentProfile
	cache   *lru.Cache[string, string]
}

// newMinifyMemo returns a memo bound to profile. A size of zero or less
// disables memoisation.
func newMinifyMemo(profile CommentProfile, size int) (*minifyMemo, error) {
	m := &minifyMemo{profile: profile}
	if size <= 0 {
		return m, nil
	}
	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}
	m.cache = cache
	return m, nil
}

func (m *minifyMemo) minify(content string) string {
	if m.cache == nil {
		return minify(content, m.profile)
	}
	sum := sha256.Sum256([]byte(content))
	key := hex.EncodeToString(sum[:])
	if out, ok := m.cache.Get(key); ok {
		return out
	}
	out := minify(content, m.profile)
	m.cache.Add(key, out)
	return out
}

func (m *minifyMemo) len() int {
	if m.cache == nil {
		return 0
	}
	return m.cache.Len()
}
