package convert

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"

	"doccomp/internal/render"
	"doccomp/internal/symbol"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// Digest is the content hash a cached page is stored under.
type Digest [sha256.Size]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// DiskCache хранит отрендеренные страницы по Digest символа.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is a rendered page flattened for msgpack. Section bodies are
// stored raw and decoded by kind; whole entries are zstd-compressed on disk.
type DiskPayload struct {
	Schema uint16

	Identifier string
	Kind       string
	Title      string
	Languages  []string
	References []string

	Sections []CachedSection
}

type CachedSection struct {
	Kind     string
	Default  msgpack.RawMessage
	Variants []CachedVariant
}

type CachedVariant struct {
	Traits []string
	Value  msgpack.RawMessage
}

// OpenDiskCache opens (creating if needed) a cache rooted at dir.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if dir == "" {
		return nil, errors.New("cache directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := key.String()
	// подкаталог по первым двум символам, чтобы не раздувать один каталог
	return filepath.Join(c.dir, "pages", hexKey[:2], hexKey+".mp.zst")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) (err error) {
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
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	zw, err := zstd.NewWriter(f)
	if err != nil {
		return err
	}
	if err = msgpack.NewEncoder(zw).Encode(payload); err != nil {
		_ = zw.Close()
		return err
	}
	if err = zw.Close(); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache. A payload written
// with another schema counts as a miss.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
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

	zr, err := zstd.NewReader(f)
	if err != nil {
		return false, err
	}
	defer zr.Close()

	if err := msgpack.NewDecoder(zr).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// Fingerprint hashes everything that affects sym's rendered page, including
// the page identifier and the links the page resolves against.
func Fingerprint(sym *symbol.Symbol, identifier string, linkSalt []byte) (Digest, error) {
	raw, err := json.Marshal(sym)
	if err != nil {
		return Digest{}, fmt.Errorf("fingerprint %s: %w", sym.PreciseIdentifier, err)
	}
	h := sha256.New()
	fmt.Fprintf(h, "schema=%d\x00id=%s\x00", diskCacheSchemaVersion, identifier)
	h.Write(linkSalt)
	h.Write([]byte{0})
	h.Write(raw)
	var d Digest
	copy(d[:], h.Sum(nil))
	return d, nil
}

func pageToPayload(page *render.Page) (*DiskPayload, error) {
	payload := &DiskPayload{
		Schema:     diskCacheSchemaVersion,
		Identifier: page.Identifier,
		Kind:       page.Kind,
		Title:      page.Title,
		Languages:  page.Languages,
		References: page.References,
	}
	for _, coll := range page.Sections {
		def, err := msgpack.Marshal(coll.Default)
		if err != nil {
			return nil, fmt.Errorf("encode %s section: %w", coll.Default.Kind(), err)
		}
		cs := CachedSection{Kind: string(coll.Default.Kind()), Default: def}
		for _, v := range coll.Variants {
			raw, err := msgpack.Marshal(v.Value)
			if err != nil {
				return nil, fmt.Errorf("encode %s section variant: %w", v.Value.Kind(), err)
			}
			cv := CachedVariant{Value: raw}
			for _, t := range v.Traits {
				cv.Traits = append(cv.Traits, t.InterfaceLanguage)
			}
			cs.Variants = append(cs.Variants, cv)
		}
		payload.Sections = append(payload.Sections, cs)
	}
	return payload, nil
}

func payloadToPage(payload *DiskPayload) (*render.Page, error) {
	page := &render.Page{
		Identifier: payload.Identifier,
		Kind:       payload.Kind,
		Title:      payload.Title,
		Languages:  payload.Languages,
		References: payload.References,
	}
	for _, cs := range payload.Sections {
		kind := render.SectionKind(cs.Kind)
		def, err := decodeSection(kind, cs.Default)
		if err != nil {
			return nil, err
		}
		coll := render.NewVariantCollection(def)
		for _, cv := range cs.Variants {
			s, err := decodeSection(kind, cv.Value)
			if err != nil {
				return nil, err
			}
			v := render.Variant[render.Section]{Value: s}
			for _, t := range cv.Traits {
				v.Traits = append(v.Traits, render.Trait{InterfaceLanguage: t})
			}
			coll.Variants = append(coll.Variants, v)
		}
		page.Sections = append(page.Sections, coll)
	}
	return page, nil
}

func decodeSection(kind render.SectionKind, raw msgpack.RawMessage) (render.Section, error) {
	s, err := render.NewSection(kind)
	if err != nil {
		return nil, err
	}
	if err := msgpack.Unmarshal(raw, s); err != nil {
		return nil, fmt.Errorf("decode %s section: %w", kind, err)
	}
	return s, nil
}
