package config

import "path/filepath"

// Paths describes where every cached or imported file lives.
// CacheRoot is per-user state, PortableRoot sits next to the binary.
type Paths struct {
	CacheRoot    string
	PortableRoot string
}

const (
	schemaDirName  = "tf2_schema_dump"
	schemaFileName = "schema_items.json"
	iconsDirName   = "icons"
)

func (p Paths) SettingsPath() string       { return filepath.Join(p.CacheRoot, "settings.json") }
func (p Paths) DashboardCachePath() string { return filepath.Join(p.CacheRoot, "dashboard_cache.json") }
func (p Paths) PricesRawPath() string      { return filepath.Join(p.CacheRoot, "prices_v4.json") }
func (p Paths) PricesMetaPath() string     { return filepath.Join(p.CacheRoot, "prices_v4.meta.json") }
func (p Paths) LogsDir() string            { return filepath.Join(p.CacheRoot, "logs") }

func (p Paths) SchemaCacheDir() string      { return filepath.Join(p.CacheRoot, schemaDirName) }
func (p Paths) SchemaCachePath() string     { return filepath.Join(p.SchemaCacheDir(), schemaFileName) }
func (p Paths) SchemaCacheIconsDir() string { return filepath.Join(p.SchemaCacheDir(), iconsDirName) }

func (p Paths) PortableSchemaDir() string      { return filepath.Join(p.PortableRoot, schemaDirName) }
func (p Paths) PortableSchemaPath() string     { return filepath.Join(p.PortableSchemaDir(), schemaFileName) }
func (p Paths) PortableSchemaIconsDir() string { return filepath.Join(p.PortableSchemaDir(), iconsDirName) }
