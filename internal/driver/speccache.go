package driver

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"slate/internal/rtspec"
	"slate/internal/target"
)

// Digest keys cache entries: SHA-256 over manifest content, target triple,
// and the spec schema version.
type Digest [sha256.Size]byte

// SpecCache stores encoded spec graphs per unit on disk so downstream
// tooling can skip reprocessing unchanged manifests. Thread-safe.
type SpecCache struct {
	mu  sync.RWMutex
	dir string
}

// SpecVar is one exported variable's encoded spec graph.
type SpecVar struct {
	Name string
	Spec []byte
}

// SpecPayload is the cached artifact for one unit.
type SpecPayload struct {
	Schema uint16
	Unit   string
	Target string
	Vars   []SpecVar
}

// OpenSpecCache initializes a disk cache at the standard location.
func OpenSpecCache(app string) (*SpecCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &SpecCache{dir: dir}, nil
}

// HashUnit derives the cache key for a manifest on a target.
func HashUnit(manifestPath string, tgt target.Target) (Digest, error) {
	content, err := os.ReadFile(manifestPath) // #nosec G304 -- path is provided by the caller
	if err != nil {
		return Digest{}, err
	}
	h := sha256.New()
	h.Write(content)
	h.Write([]byte(tgt.Triple))
	var ver [2]byte
	binary.LittleEndian.PutUint16(ver[:], rtspec.SchemaVersion)
	h.Write(ver[:])
	var d Digest
	copy(d[:], h.Sum(nil))
	return d, nil
}

// EncodeUnitSpecs renders and encodes the spec graph of every exported
// variable in a result.
func EncodeUnitSpecs(res *UnitResult) (*SpecPayload, error) {
	payload := &SpecPayload{
		Schema: rtspec.SchemaVersion,
		Unit:   res.Name,
		Target: res.Target.Triple,
		Vars:   make([]SpecVar, 0, len(res.Vars)),
	}
	for _, v := range res.Vars {
		node, ok := v.Type.SpecNode()
		if !ok {
			return nil, fmt.Errorf("unit %s: no spec for %q", res.Name, v.Name)
		}
		var buf bytes.Buffer
		if err := rtspec.Encode(&buf, node); err != nil {
			return nil, fmt.Errorf("unit %s: encode %q: %w", res.Name, v.Name, err)
		}
		payload.Vars = append(payload.Vars, SpecVar{Name: v.Name, Spec: buf.Bytes()})
	}
	return payload, nil
}

func (c *SpecCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "specs", hex.EncodeToString(key[:])+".mp")
}

// Put serializes a payload to the cache, replacing any entry atomically.
func (c *SpecCache) Put(key Digest, payload *SpecPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload from the cache. A schema mismatch counts as a miss.
func (c *SpecCache) Get(key Digest, out *SpecPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != rtspec.SchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll wipes the cache directory, useful after format changes.
func (c *SpecCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "specs"))
}
