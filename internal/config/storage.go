package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

// StorageConfig selects and configures the document store backing the paginators.
type StorageConfig struct {
	Backend string       `yaml:"backend"` // mongo, memory
	Mongo   MongoConfig  `yaml:"mongo"`
	Memory  MemoryConfig `yaml:"memory"`
}

type MongoConfig struct {
	URI          string `yaml:"uri"`
	DatabaseName string `yaml:"database_name"`
	// ObjectIDs makes the store translate between hex string ids and ObjectId _id values.
	ObjectIDs bool `yaml:"object_ids"`
}

type MemoryConfig struct {
	// FixturesPath points to a YAML file mapping collection names to document lists.
	FixturesPath string `yaml:"fixtures_path"`
}

// DefaultStorageConfig returns default storage configuration
func DefaultStorageConfig() StorageConfig {
	return StorageConfig{
		Backend: BackendMongo,
		Mongo: MongoConfig{
			URI:          "mongodb://localhost:27017",
			DatabaseName: "pager",
		},
	}
}

// ApplyDefaults fills in missing values with defaults
func (c *StorageConfig) ApplyDefaults() {
	defaults := DefaultStorageConfig()
	if c.Backend == "" {
		c.Backend = defaults.Backend
	}
	if c.Mongo.URI == "" {
		c.Mongo.URI = defaults.Mongo.URI
	}
	if c.Mongo.DatabaseName == "" {
		c.Mongo.DatabaseName = defaults.Mongo.DatabaseName
	}
}

// ApplyEnvOverrides applies environment variable overrides
func (c *StorageConfig) ApplyEnvOverrides() {
	if v := os.Getenv("PAGER_MONGO_URI"); v != "" {
		c.Mongo.URI = v
	}
	if v := os.Getenv("PAGER_MONGO_DATABASE"); v != "" {
		c.Mongo.DatabaseName = v
	}
	if v := os.Getenv("PAGER_STORAGE_BACKEND"); v != "" {
		c.Backend = v
	}
}

// ResolvePaths resolves the fixtures path relative to the config directory
func (c *StorageConfig) ResolvePaths(configDir string) {
	if c.Memory.FixturesPath != "" && !filepath.IsAbs(c.Memory.FixturesPath) {
		c.Memory.FixturesPath = filepath.Join(configDir, c.Memory.FixturesPath)
	}
}

// Validate validates the configuration
func (c *StorageConfig) Validate() error {
	switch c.Backend {
	case BackendMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("storage.mongo.uri is required for the mongo backend")
		}
		if c.Mongo.DatabaseName == "" {
			return fmt.Errorf("storage.mongo.database_name is required for the mongo backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("invalid storage backend: %s (must be mongo or memory)", c.Backend)
	}
	return nil
}
