package resources

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ResourceConfig represents the resource manifest loaded from YAML.
// It defines the structure of assets/config/resources.yaml.
//
// Structure:
//
//	version: "1.0"
//	base_path: assets
//	groups:
//	  sprites:
//	    images:
//	      - id: player
//	        path: images/player
type ResourceConfig struct {
	Version  string                   `yaml:"version"`   // Manifest version
	BasePath string                   `yaml:"base_path"` // Base path for all resources (e.g., "assets")
	Groups   map[string]ResourceGroup `yaml:"groups"`    // Resource groups keyed by group name
}

// ResourceGroup is a collection of related images that are loaded together.
type ResourceGroup struct {
	Images []ImageResource `yaml:"images"`
}

// ImageResource maps a logical asset name to an image file.
//
// Fields:
//   - ID: Logical name used by the game (e.g., "player", "enemy")
//   - Path: Path relative to base_path; ".png" is appended when no extension is given
type ImageResource struct {
	ID   string `yaml:"id"`
	Path string `yaml:"path"`
}

// ParseResourceConfig decodes a manifest and rejects duplicate or empty IDs.
func ParseResourceConfig(data []byte) (*ResourceConfig, error) {
	var cfg ResourceConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse resource config: %w", err)
	}

	seen := make(map[string]string)
	for groupName, group := range cfg.Groups {
		for _, img := range group.Images {
			if img.ID == "" || img.Path == "" {
				return nil, fmt.Errorf("group %s: image entry needs both id and path", groupName)
			}
			if other, dup := seen[img.ID]; dup {
				return nil, fmt.Errorf("duplicate resource id %q in groups %s and %s", img.ID, other, groupName)
			}
			seen[img.ID] = groupName
		}
	}

	return &cfg, nil
}

// buildFullPath joins the base path with a resource's relative path.
//
// Paths are slash-separated because they address an fs.FS, never the OS.
func buildFullPath(basePath, relativePath string) string {
	if basePath == "" {
		return relativePath
	}
	if len(relativePath) > 0 && relativePath[0] == '/' {
		return basePath + relativePath
	}
	return basePath + "/" + relativePath
}
