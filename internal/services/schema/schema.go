// Package schema indexes the locally dumped TF2 item schema and its icons.
package schema

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"tf2-trader/internal/config"
	"tf2-trader/internal/models"
	"tf2-trader/internal/tolerant"
)

var (
	ErrPathRequired   = errors.New("schema path is required")
	ErrSchemaNotFound = errors.New("schema_items.json not found")
)

var (
	nameCandidates = tolerant.MustCompile("$.item_name", "$.name")
	descCandidates = tolerant.MustCompile("$.item_description", "$.description", "$.item_desc", "$.item_type_name")
	iconCandidates = tolerant.MustCompile("$.image_url", "$.image_url_large", "$.icon_url")
)

var iconExtensions = []string{".png", ".webp", ".jpg", ".jpeg"}

// Index maps defindex to catalog metadata for one schema file.
type Index struct {
	Path string
	Map  map[int]models.SchemaItem
}

type Service struct {
	paths config.Paths
}

func NewService(paths config.Paths) *Service {
	return &Service{paths: paths}
}

// ResolvePath returns the schema file to use: the portable copy next to the
// binary wins over the imported one in the cache. Empty when neither exists.
func (s *Service) ResolvePath() string {
	for _, p := range []string{s.paths.PortableSchemaPath(), s.paths.SchemaCachePath()} {
		if isFile(p) {
			return p
		}
	}
	return ""
}

// LoadIndex parses the schema file. It returns nil when no schema is
// available or the file is not a JSON array.
func (s *Service) LoadIndex() *Index {
	path := s.ResolvePath()
	if path == "" {
		return nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Printf("schema: reading %s failed: %v", path, err)
		return nil
	}
	m, err := ParseItems(raw)
	if err != nil {
		log.Printf("schema: %s: %v", path, err)
		return nil
	}
	return &Index{Path: path, Map: m}
}

// ParseItems reads a schema_items.json array.
func ParseItems(raw []byte) (map[int]models.SchemaItem, error) {
	doc, err := tolerant.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	elems, ok := doc.([]any)
	if !ok {
		return nil, fmt.Errorf("schema is not an array")
	}

	m := make(map[int]models.SchemaItem, len(elems))
	for _, el := range elems {
		if _, ok := el.(map[string]any); !ok {
			continue
		}
		defindex, ok := tolerant.IntField(el, "defindex")
		if !ok || defindex < 0 {
			continue
		}
		m[defindex] = models.SchemaItem{
			Defindex:    defindex,
			Name:        nameCandidates.StringOr(el, FallbackName(defindex)),
			Description: descCandidates.StringOr(el, ""),
			IconURL:     iconCandidates.StringOr(el, ""),
		}
	}
	return m, nil
}

// FallbackName is the display name of an item missing from the schema.
func FallbackName(defindex int) string {
	return "Item " + strconv.Itoa(defindex)
}

// LocalIconPath finds <defindex>.<ext> in the portable then cached icon
// directories. Empty when no icon exists.
func (s *Service) LocalIconPath(defindex int) string {
	name := strconv.Itoa(defindex)
	for _, dir := range []string{s.paths.PortableSchemaIconsDir(), s.paths.SchemaCacheIconsDir()} {
		for _, ext := range iconExtensions {
			p := filepath.Join(dir, name+ext)
			if isFile(p) {
				return p
			}
		}
	}
	return ""
}

// ImportFromFile copies a schema_items.json into the cache, together with
// the files of a sibling "icons" directory when there is one.
func (s *Service) ImportFromFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return ErrPathRequired
	}
	if !isFile(path) {
		return fmt.Errorf("%w: %s", ErrSchemaNotFound, path)
	}

	if err := os.MkdirAll(s.paths.SchemaCacheDir(), 0o755); err != nil {
		return err
	}
	if sameFile(path, s.paths.SchemaCachePath()) {
		log.Printf("schema: %s is already the cached schema", path)
	} else if err := copyFile(path, s.paths.SchemaCachePath()); err != nil {
		return fmt.Errorf("import schema: %w", err)
	}

	iconsDir := filepath.Join(filepath.Dir(path), "icons")
	if info, err := os.Stat(iconsDir); err == nil && info.IsDir() && !sameFile(iconsDir, s.paths.SchemaCacheIconsDir()) {
		n, err := copyDirFiles(iconsDir, s.paths.SchemaCacheIconsDir())
		if err != nil {
			return fmt.Errorf("import icons: %w", err)
		}
		log.Printf("schema: imported %d icons from %s", n, iconsDir)
	}
	return nil
}

func copyDirFiles(src, dst string) (int, error) {
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return 0, err
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if err := copyFile(filepath.Join(src, e.Name()), filepath.Join(dst, e.Name())); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// copyFile replaces dst through a temporary file in the same directory.
// Copying a file onto itself is a no-op.
func copyFile(src, dst string) error {
	if sameFile(src, dst) {
		return nil
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), filepath.Base(dst)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, dst); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// sameFile reports whether a and b name the same existing file or directory.
func sameFile(a, b string) bool {
	ia, err := os.Stat(a)
	if err != nil {
		return false
	}
	ib, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ia, ib)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
