package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ColorMode controls when the driver colorizes diagnostic output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Project is the optional per-directory `hexen.yaml` configuration.
// Its absence is not an error — callers get defaultProject (`.hxn`,
// color auto).
type Project struct {
	SourceExt string    `yaml:"sourceExt"`
	Color     ColorMode `yaml:"color"`
}

// defaultProject returns the configuration used when no hexen.yaml is
// found next to the source file being processed.
func defaultProject() Project {
	return Project{SourceExt: SourceFileExt, Color: ColorAuto}
}

// LoadProject looks for a `hexen.yaml` in the same directory as
// sourcePath and parses it if present. A missing file is not an error;
// a malformed one is returned as an error so the driver can report it
// distinctly from a missing-file condition.
func LoadProject(sourcePath string) (Project, error) {
	dir := filepath.Dir(sourcePath)
	path := filepath.Join(dir, "hexen.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultProject(), nil
		}
		return defaultProject(), err
	}

	proj := defaultProject()
	if err := yaml.Unmarshal(data, &proj); err != nil {
		return defaultProject(), err
	}
	if proj.SourceExt == "" {
		proj.SourceExt = SourceFileExt
	}
	if proj.Color == "" {
		proj.Color = ColorAuto
	}
	return proj, nil
}
