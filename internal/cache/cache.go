// Package cache keeps the last dashboard snapshot on disk and in memory.
package cache

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	gocache "github.com/patrickmn/go-cache"

	"tf2-trader/internal/jsonfile"
	"tf2-trader/internal/models"
)

const snapshotKey = "dashboard"

// Store persists the snapshot as JSON. The file is the source of truth: the
// in-memory copy is used only while the file on disk is the one it was read
// from (same inode, size and modification time), so writes from another
// process (the CLI next to a running server) are picked up. Every write
// renames a fresh temporary file into place, which changes the inode.
//
// Callers always receive their own copy of the snapshot.
type Store struct {
	path string
	mem  *gocache.Cache
}

type entry struct {
	snap *models.DashboardSnapshot
	info fs.FileInfo
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
		mem:  gocache.New(gocache.NoExpiration, 0),
	}
}

// WriteSnapshot replaces the cached snapshot. The file is written first so
// a failed write leaves both copies on the previous snapshot.
func (s *Store) WriteSnapshot(snap *models.DashboardSnapshot) error {
	if snap == nil {
		return fmt.Errorf("write snapshot: nil snapshot")
	}
	if err := jsonfile.Write(s.path, snap); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if info, err := os.Stat(s.path); err == nil {
		s.mem.SetDefault(snapshotKey, entry{snap: snap.Clone(), info: info})
	} else {
		s.mem.Delete(snapshotKey)
	}
	return nil
}

// ReadSnapshot returns the last written snapshot, or nil when there is none
// or the file cannot be decoded.
func (s *Store) ReadSnapshot() (*models.DashboardSnapshot, error) {
	info, err := os.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.mem.Delete(snapshotKey)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	if v, ok := s.mem.Get(snapshotKey); ok {
		e := v.(entry)
		if sameVersion(e.info, info) {
			return e.snap.Clone(), nil
		}
	}

	var snap models.DashboardSnapshot
	found, err := jsonfile.Read(s.path, &snap)
	if err != nil {
		log.Printf("cache: ignoring unreadable snapshot: %v", err)
		s.mem.Delete(snapshotKey)
		return nil, nil
	}
	if !found {
		s.mem.Delete(snapshotKey)
		return nil, nil
	}
	// Tagged with the metadata seen before decoding: a concurrent replace
	// makes the next read miss instead of keeping a stale copy.
	s.mem.SetDefault(snapshotKey, entry{snap: &snap, info: info})
	return snap.Clone(), nil
}

func sameVersion(a, b fs.FileInfo) bool {
	return os.SameFile(a, b) && a.Size() == b.Size() && a.ModTime().Equal(b.ModTime())
}
