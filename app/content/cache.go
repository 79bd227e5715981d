package content

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Cache holds the static site content (projects, skills, experience)
// parsed from YAML files. One file per section, named <section>.yml.
// The section values are data, not behavior: they are decoded into
// generic documents and served as-is.
type Cache struct {
	contentDir string
	cache      map[string]any
	mu         sync.RWMutex
}

func NewCache(contentDir string) *Cache {
	return &Cache{
		contentDir: contentDir,
		cache:      make(map[string]any),
	}
}

func (c *Cache) Run() error {
	if _, err := os.Stat(c.contentDir); os.IsNotExist(err) {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(c.contentDir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to find YML files: %w", err)
	}

	for _, file := range files {
		sectionName := strings.TrimSuffix(filepath.Base(file), ".yml")

		if _, err := c.LoadSection(sectionName); err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}

		slog.Debug("Content section loaded", "section", sectionName)
	}

	return nil
}

func (c *Cache) LoadSection(sectionName string) (any, error) {
	sectionFile := filepath.Join(c.contentDir, sectionName+".yml")

	data, err := os.ReadFile(sectionFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var document any
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[sectionName] = document

	return document, nil
}

func (c *Cache) GetSection(sectionName string) (any, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	document, ok := c.cache[sectionName]
	if !ok {
		return nil, fmt.Errorf("content section '%s' not found", sectionName)
	}
	return document, nil
}

func (c *Cache) GetSectionNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.cache))
	for name := range c.cache {
		names = append(names, name)
	}
	return names
}

func (c *Cache) GetSectionCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}
