package evidence

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// CountCatalogDatasets counts dataset entries in a Kedro catalog document.
// Template anchors (keys starting with "_") and scalar entries do not count.
func CountCatalogDatasets(data []byte) (int, error) {
	var catalog map[string]any
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return 0, fmt.Errorf("parse catalog: %w", err)
	}
	count := 0
	for key, value := range catalog {
		if len(key) == 0 || key[0] == '_' {
			continue
		}
		if _, ok := value.(map[string]any); ok {
			count++
		}
	}
	return count, nil
}
