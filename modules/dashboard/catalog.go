package dashboard

import (
	_ "embed"
	"fmt"

	"github.com/TheLab-ms/styler/modules/embed"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// CatalogEntry is a widget that can be added to the dashboard.
type CatalogEntry struct {
	ID     string       `yaml:"id" json:"id"`
	Title  string       `yaml:"title" json:"title"`
	Layout embed.Layout `yaml:"layout" json:"defaultLayout"`
}

type Catalog struct {
	Widgets []CatalogEntry `yaml:"widgets" json:"widgets"`
	byID    map[string]*CatalogEntry
}

// ParseCatalog reads a catalog and checks that ids are unique and sizes are set.
func ParseCatalog(buf []byte) (*Catalog, error) {
	c := &Catalog{}
	if err := yaml.Unmarshal(buf, c); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal: %w", err)
	}

	c.byID = make(map[string]*CatalogEntry, len(c.Widgets))
	for i := range c.Widgets {
		w := &c.Widgets[i]
		if w.ID == "" {
			return nil, fmt.Errorf("catalog entry %d has no id", i)
		}
		if _, ok := c.byID[w.ID]; ok {
			return nil, fmt.Errorf("duplicate catalog entry %q", w.ID)
		}
		if w.Layout.W <= 0 || w.Layout.H <= 0 {
			return nil, fmt.Errorf("catalog entry %q has no default size", w.ID)
		}
		c.byID[w.ID] = w
	}
	return c, nil
}

// DefaultCatalog is the built-in widget library.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(catalogYAML)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Get(id string) (*CatalogEntry, bool) {
	w, ok := c.byID[id]
	return w, ok
}
