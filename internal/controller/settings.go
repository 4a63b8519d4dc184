package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/openlms-dev/admin-console/internal/mirror"
	"github.com/openlms-dev/admin-console/internal/models"
)

// Settings manages the whole-document configuration behind the settings
// screen: loaded once at mount, edited field by field in memory, persisted
// as one document on explicit save.
type Settings struct {
	store mirror.Store

	mu       sync.Mutex
	settings models.Settings
}

// NewSettings builds the settings controller.
func NewSettings(store mirror.Store) *Settings {
	return &Settings{store: store, settings: models.DefaultSettings()}
}

// Load reads the saved document, defaulting to the built-in configuration
// when absent or corrupted.
func (c *Settings) Load(ctx context.Context) {
	settings := models.DefaultSettings()
	if err := c.store.Load(ctx, mirror.KeySettings, &settings); err != nil {
		settings = models.DefaultSettings()
	}

	c.mu.Lock()
	c.settings = settings
	c.mu.Unlock()
}

// Get returns the current in-memory document.
func (c *Settings) Get() models.Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// Set updates one field in memory. Section and field use the document's
// snake_case names; boolean fields accept true/false.
func (c *Settings) Set(section, field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, err := json.Marshal(c.settings)
	if err != nil {
		return err
	}
	doc := map[string]map[string]any{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}

	fields, ok := doc[section]
	if !ok {
		return fmt.Errorf("unknown settings section %q", section)
	}
	current, ok := fields[field]
	if !ok {
		return fmt.Errorf("unknown field %q in section %q", field, section)
	}

	switch current.(type) {
	case bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("field %q expects true or false", field)
		}
		fields[field] = b
	default:
		fields[field] = value
	}

	updated, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(updated, &c.settings)
}

// Save persists the whole document. The section names what the user edited
// and must be one of the known sections.
func (c *Settings) Save(ctx context.Context, section string) error {
	known := false
	for _, s := range models.SettingsSections {
		if s == section {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown settings section %q", section)
	}

	c.mu.Lock()
	settings := c.settings
	c.mu.Unlock()

	return c.store.Save(ctx, mirror.KeySettings, settings)
}
