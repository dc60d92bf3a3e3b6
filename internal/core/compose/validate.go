package compose

import (
	"context"
	"strings"

	"github.com/compose-spec/compose-go/v2/loader"
	"github.com/compose-spec/compose-go/v2/types"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// Manifest Validation
// =============================================================================

// ValidateManifest loads a rendered manifest through the compose loader, so a
// generation run never hands the orchestrator a document it cannot load.
func ValidateManifest(content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrEmptyManifest
	}

	// Parse YAML into a map first
	var dict map[string]interface{}
	if err := yaml.Unmarshal([]byte(content), &dict); err != nil {
		return NewManifestError("", "invalid YAML syntax", ErrInvalidManifest)
	}
	if dict == nil {
		return NewManifestError("", "invalid YAML syntax", ErrInvalidManifest)
	}

	project, err := loader.LoadWithContext(context.Background(), types.ConfigDetails{
		ConfigFiles: []types.ConfigFile{
			{
				Content: []byte(content),
				Config:  dict,
			},
		},
	}, func(opts *loader.Options) {
		opts.SetProjectName("ndbup", false)
		opts.SkipValidation = false
		// Rendered manifests carry no variables or extends.
		opts.SkipInterpolation = true
		opts.SkipNormalization = true
		opts.SkipExtends = true
	})
	if err != nil {
		return NewManifestError("", err.Error(), ErrInvalidManifest)
	}

	if len(project.Services) == 0 {
		return NewManifestError("", "manifest defines no services", ErrInvalidManifest)
	}

	return nil
}
