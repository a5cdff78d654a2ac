// Package manifest loads the declarative patch configuration: for every
// package, a mapping from a human-readable description to a patch file.
// Patches may be declared inline or in a referenced external file, and the
// payloads are schema-validated before anything touches version control.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Manifest mirrors the on-disk configuration shape.
type Manifest struct {
	Patches     map[string]map[string]string `json:"patches"`
	PatchesFile string                       `json:"patches-file"`
}

// PatchDescriptor is one declared patch with its file path resolved to an
// absolute location. Read-only after loading.
type PatchDescriptor struct {
	Description string
	File        string
	Package     string
}

// ConfigurationError reports invalid or missing manifest data. It is fatal
// and aborts the run before any probing starts.
type ConfigurationError struct {
	Path string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration %s: %v", e.Path, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

const manifestSchema = `{
  "type": "object",
  "properties": {
    "patches": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "additionalProperties": {"type": "string", "minLength": 1},
        "minProperties": 1
      }
    },
    "patches-file": {"type": "string", "minLength": 1}
  }
}`

// Load reads and validates the patch manifest at path and returns the
// declared patches grouped by package name. Relative patch file paths are
// resolved against the manifest's directory; inline declarations win over
// duplicates from a referenced patches file.
func Load(path string) (map[string][]PatchDescriptor, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigurationError{Path: path, Err: err}
	}
	var m Manifest
	if err := validateAndDecode(raw, &m); err != nil {
		return nil, &ConfigurationError{Path: path, Err: err}
	}

	dir := filepath.Dir(path)
	merged := make(map[string]map[string]string)
	for pkg, patches := range m.Patches {
		merged[pkg] = patches
	}

	if m.PatchesFile != "" {
		extPath := m.PatchesFile
		if !filepath.IsAbs(extPath) {
			extPath = filepath.Join(dir, extPath)
		}
		extRaw, err := os.ReadFile(extPath)
		if err != nil {
			return nil, &ConfigurationError{Path: extPath, Err: err}
		}
		var ext Manifest
		if err := validateAndDecode(extRaw, &ext); err != nil {
			return nil, &ConfigurationError{Path: extPath, Err: err}
		}
		for pkg, patches := range ext.Patches {
			if _, ok := merged[pkg]; !ok {
				merged[pkg] = patches
				continue
			}
			for desc, file := range patches {
				if _, ok := merged[pkg][desc]; !ok {
					merged[pkg][desc] = file
				}
			}
		}
	}

	if len(merged) == 0 {
		return nil, &ConfigurationError{Path: path, Err: errors.New("no patches declared")}
	}

	result := make(map[string][]PatchDescriptor, len(merged))
	for pkg, patches := range merged {
		descriptors := make([]PatchDescriptor, 0, len(patches))
		for desc, file := range patches {
			resolved := file
			if !filepath.IsAbs(resolved) {
				resolved = filepath.Join(dir, resolved)
			}
			descriptors = append(descriptors, PatchDescriptor{
				Description: desc,
				File:        resolved,
				Package:     pkg,
			})
		}
		// Deterministic patch order inside a package.
		sort.Slice(descriptors, func(i, j int) bool {
			return descriptors[i].Description < descriptors[j].Description
		})
		result[pkg] = descriptors
	}
	return result, nil
}

func validateAndDecode(raw []byte, into *Manifest) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(manifestSchema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if !result.Valid() {
		issues := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			issues = append(issues, desc.String())
		}
		return errors.New(strings.Join(issues, "; "))
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return err
	}
	return nil
}
