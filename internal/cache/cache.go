// Package cache persists the declaration-scan phase's per-file summaries
// (spec §5 phase 1) to disk, keyed by the file's content hash, so a
// repeated run over an unchanged tree can skip re-walking that file's AST
// just to rebuild the symbol table. Grounded on the teacher's
// driver.DiskCache: msgpack encoding and a CreateTemp+Rename atomic write,
// adapted from a module-hash keyspace to a PHP declaration keyspace.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/phpray/phpray/internal/symbols"
)

// schemaVersion guards against decoding a payload shape an older/newer
// binary wrote; bump it whenever Entry's fields change.
const schemaVersion uint16 = 1

// Entry is the on-disk payload for one file's cached declarations.
type Entry struct {
	Schema    uint16
	Path      string
	Functions []string
	Classes   []classEntry
}

type classEntry struct {
	Kind       string
	Name       string
	Extends    []string
	Implements []string
	Methods    []string
	Properties []string
	Constants  []string
}

// Disk is a content-addressed store of declaration-scan results under dir.
type Disk struct {
	dir string
}

// Open returns a Disk rooted at dir, creating it if necessary.
func Open(dir string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Disk{dir: dir}, nil
}

// Key returns the content-hash key Put/Get index by.
func Key(content []byte) [32]byte { return sha256.Sum256(content) }

func (d *Disk) pathFor(key [32]byte) string {
	return filepath.Join(d.dir, "decls", hex.EncodeToString(key[:])+".mp")
}

// Put encodes decls for path and writes it atomically under key.
func (d *Disk) Put(key [32]byte, path string, decls symbols.FileDecls) error {
	entry := toEntry(path, decls)
	p := d.pathFor(key)
	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	enc := msgpack.NewEncoder(tmp)
	if err := enc.Encode(entry); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, p)
}

// Get looks up the declarations cached under key. ok is false on a cache
// miss (no error) so callers fall back to re-scanning the file.
func (d *Disk) Get(key [32]byte) (decls symbols.FileDecls, ok bool, err error) {
	f, err := os.Open(d.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return symbols.FileDecls{}, false, nil
		}
		return symbols.FileDecls{}, false, err
	}
	defer f.Close()

	var entry Entry
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&entry); err != nil {
		return symbols.FileDecls{}, false, err
	}
	if entry.Schema != schemaVersion {
		return symbols.FileDecls{}, false, nil
	}
	return fromEntry(entry), true, nil
}

// DropAll invalidates every cached entry, e.g. after a schema change.
func (d *Disk) DropAll() error {
	return os.RemoveAll(filepath.Join(d.dir, "decls"))
}

func toEntry(path string, decls symbols.FileDecls) Entry {
	entry := Entry{Schema: schemaVersion, Path: path, Functions: decls.Functions}
	entry.Classes = make([]classEntry, len(decls.Classes))
	for i, c := range decls.Classes {
		entry.Classes[i] = classEntry{
			Kind:       c.Kind,
			Name:       c.Name,
			Extends:    c.Extends,
			Implements: c.Implements,
			Methods:    setKeys(c.Methods),
			Properties: setKeys(c.Properties),
			Constants:  setKeys(c.Constants),
		}
	}
	return entry
}

func fromEntry(entry Entry) symbols.FileDecls {
	decls := symbols.FileDecls{Functions: entry.Functions}
	decls.Classes = make([]symbols.ClassInfo, len(entry.Classes))
	for i, c := range entry.Classes {
		decls.Classes[i] = symbols.ClassInfo{
			Kind:       c.Kind,
			Name:       c.Name,
			Extends:    c.Extends,
			Implements: c.Implements,
			Methods:    keySet(c.Methods),
			Properties: keySet(c.Properties),
			Constants:  keySet(c.Constants),
		}
	}
	return decls
}

func setKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func keySet(keys []string) map[string]bool {
	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}
