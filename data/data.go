package data

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Dir returns the data directory on disk
func Dir() string {
	dir := os.ExpandEnv("$HOME/.desa")
	return filepath.Join(dir, "data")
}

// Save to disk
func Save(key, val string) error {
	path := Dir()
	file := filepath.Join(path, key)
	if err := os.MkdirAll(filepath.Dir(file), 0700); err != nil {
		return err
	}
	return os.WriteFile(file, []byte(val), 0644)
}

// Load file from disk
func Load(key string) ([]byte, error) {
	file := filepath.Join(Dir(), key)
	return os.ReadFile(file)
}

// SaveJSON marshals val and stores it under key
func SaveJSON(key string, val interface{}) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	return Save(key, string(b))
}

// LoadJSON reads key and unmarshals it into val
func LoadJSON(key string, val interface{}) error {
	b, err := Load(key)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, val)
}
