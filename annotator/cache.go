package annotator

import (
	"encoding/binary"
	"sync"

	"github.com/minio/highwayhash"
)

var hashKey = []byte("srcjump.annotator.content.cache!")

// Fingerprint hashes source bytes together with the config fields that affect
// output, so a batch run can skip files whose annotation cannot have changed.
func Fingerprint(src []byte, filePath string, cfg Config) (uint64, error) {
	hash, err := highwayhash.New64(hashKey)
	if err != nil {
		return 0, err
	}
	if _, err = hash.Write(src); err != nil {
		return 0, err
	}
	var flags [2]byte
	if cfg.UseRelativePaths {
		flags[0] = 1
	}
	if cfg.InjectLegacyDebugInfo {
		flags[1] = 1
	}
	hash.Write(flags[:])
	hash.Write([]byte(cfg.attribute()))
	hash.Write([]byte(cfg.RootDir))
	hash.Write([]byte(filePath))
	var sep [1]byte
	hash.Write(sep[:])
	binary.Write(hash, binary.LittleEndian, int64(len(src)))
	return hash.Sum64(), nil
}

// Cache remembers fingerprints of already-annotated content.
type Cache struct {
	mu   sync.Mutex
	seen map[uint64]struct{}
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{seen: make(map[uint64]struct{})}
}

// Seen records the fingerprint and reports whether it was already present.
func (c *Cache) Seen(fingerprint uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.seen[fingerprint]; ok {
		return true
	}
	c.seen[fingerprint] = struct{}{}
	return false
}
