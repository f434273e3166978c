/*
Package project loads and models a pyproject.toml style project document: standard [project]
metadata plus the [tool.zigcc-build] table that drives compilation of native extension modules.
*/
package project

import (
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// DefaultFile is the project document file name looked up in the project root.
const DefaultFile = "pyproject.toml"

// Contact is an author or maintainer entry.
type Contact struct {
	Name  string `mapstructure:"name" json:"name,omitempty"`
	Email string `mapstructure:"email" json:"email,omitempty"`
}

// License is the project license, sourced from either an inline expression or a file.
type License struct {
	Text string `mapstructure:"text" json:"text,omitempty"`
	File string `mapstructure:"file" json:"file,omitempty"`
}

// Metadata models the [project] table.
type Metadata struct {
	Name                 string              `mapstructure:"name" json:"name"`
	Version              string              `mapstructure:"version" json:"version"`
	Description          string              `mapstructure:"description" json:"description,omitempty"`
	Readme               string              `mapstructure:"readme" json:"readme,omitempty"`
	RequiresPython       string              `mapstructure:"requires-python" json:"requires_python,omitempty"`
	License              License             `mapstructure:"license" json:"license,omitempty"`
	Authors              []Contact           `mapstructure:"authors" json:"authors,omitempty"`
	Maintainers          []Contact           `mapstructure:"maintainers" json:"maintainers,omitempty"`
	Keywords             []string            `mapstructure:"keywords" json:"keywords,omitempty"`
	Classifiers          []string            `mapstructure:"classifiers" json:"classifiers,omitempty"`
	URLs                 map[string]string   `mapstructure:"urls" json:"urls,omitempty"`
	Dependencies         []string            `mapstructure:"dependencies" json:"dependencies,omitempty"`
	OptionalDependencies map[string][]string `mapstructure:"optional-dependencies" json:"optional_dependencies,omitempty"`
}

// BuildConfig models the [tool.zigcc-build] table. It is the configuration handed to the
// compile step and, when a configurer script is set, the document the script mutates.
type BuildConfig struct {
	Sources          []string `mapstructure:"sources" json:"sources"`
	IncludeDirs      []string `mapstructure:"include-dirs" json:"include_dirs"`
	Defines          []string `mapstructure:"defines" json:"defines"`
	LibraryDirs      []string `mapstructure:"library-dirs" json:"library_dirs"`
	Libraries        []string `mapstructure:"libraries" json:"libraries"`
	ModuleName       string   `mapstructure:"module-name" json:"module_name"`
	ConfigurerScript string   `mapstructure:"configurer-script" json:"configurer_script,omitempty"`
}

// Document is a parsed project document.
type Document struct {
	Project Metadata `mapstructure:"project" json:"project"`
	Tool    struct {
		ZigccBuild BuildConfig `mapstructure:"zigcc-build" json:"zigcc_build"`
	} `mapstructure:"tool" json:"tool"`
}

// NormalizedName returns the project name with `-` replaced by `_`, suitable for file and
// distribution naming.
func (d Document) NormalizedName() string {
	return strings.ReplaceAll(d.Project.Name, "-", "_")
}

// BuildConfig returns the [tool.zigcc-build] table with defaults resolved. The module name
// defaults to the normalized project name.
func (d Document) BuildConfig() BuildConfig {
	cfg := d.Tool.ZigccBuild
	if cfg.ModuleName == "" {
		cfg.ModuleName = d.NormalizedName()
	}
	return cfg
}

// FromFile parses the project document at path.
func FromFile(path string) (Document, error) {
	vpr := viper.New()
	vpr.SetConfigFile(path)
	vpr.SetConfigType("toml")

	if err := vpr.ReadInConfig(); err != nil {
		return Document{}, errors.Wrap(err, "read project document")
	}

	var doc Document
	if err := vpr.Unmarshal(&doc, viper.DecodeHook(licenseHook())); err != nil {
		return Document{}, errors.Wrap(err, "unmarshal project document")
	}

	if doc.Project.Name == "" {
		return Document{}, errors.New("project document missing project.name")
	}

	if doc.Project.Version == "" {
		return Document{}, errors.New("project document missing project.version")
	}

	return doc, nil
}

// licenseHook lets `license` be specified as a plain string as well as a {text, file} table.
func licenseHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != reflect.TypeOf(License{}) {
			return data, nil
		}

		return License{Text: data.(string)}, nil
	}
}
