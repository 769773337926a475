package gazetteer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/worldjourney/platoo/internal/models"
	"github.com/worldjourney/platoo/internal/placeid"
)

// gazetteerFile is the on-disk YAML layout.
type gazetteerFile struct {
	Places []*models.GazetteerEntry `yaml:"places"`
}

// LoadFile reads gazetteer entries from a YAML file. Entries without an ID
// get a deterministic one derived from name and province.
func LoadFile(path string) ([]*models.GazetteerEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read gazetteer: %w", err)
	}

	var file gazetteerFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse gazetteer: %w", err)
	}

	for _, e := range file.Places {
		if e != nil && e.ID == "" {
			e.ID = placeid.PlaceID(e.Name, e.Province)
		}
	}
	return file.Places, nil
}
