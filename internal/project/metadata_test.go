package project_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	. "github.com/zigcc/zbuild/internal/project"
)

func TestRenderMetadata(t *testing.T) {
	doc, err := FromFile("testdata/pyproject.toml")
	require.NoError(t, err)

	metadata, err := doc.RenderMetadata("testdata")
	require.NoError(t, err)

	expectLines := []string{
		"Metadata-Version: 2.1",
		"Name: demo-project",
		"Version: 0.1.0",
		"Summary: Demo native extension built with zig cc",
		"Keywords: demo,zig,extension",
		`Author-email: "Primary Author" <primary@example.com>`,
		"Author: Secondary Author",
		`Maintainer-email: "Maintainer One" <maint1@example.com>`,
		"License: MIT License",
		"Requires-Python: >=3.12",
		"Classifier: Development Status :: 3 - Alpha",
		"Classifier: Programming Language :: Python :: 3",
		"Project-URL: homepage, https://example.com/demo-project",
		"Requires-Dist: packaging>=21.0",
		"Provides-Extra: dev",
		`Requires-Dist: pytest>=7.0; extra == "dev"`,
		"Description-Content-Type: text/markdown",
	}

	for _, line := range expectLines {
		assert.Contains(t, metadata, line+"\n")
	}

	// The readme is appended as the long description after a blank line.
	assert.Contains(t, metadata, "\n\n# demo-project")
}

func TestRenderMetadataMinimal(t *testing.T) {
	var doc Document
	doc.Project.Name = "tiny"
	doc.Project.Version = "0.0.1"

	metadata, err := doc.RenderMetadata(".")
	require.NoError(t, err)

	assert.Equal(t, "Metadata-Version: 2.1\nName: tiny\nVersion: 0.0.1\n", metadata)
}

func TestRenderMetadataMissingReadme(t *testing.T) {
	var doc Document
	doc.Project.Name = "tiny"
	doc.Project.Version = "0.0.1"
	doc.Project.Readme = "README.md"

	_, err := doc.RenderMetadata(t.TempDir())
	assert.Error(t, err)
}

func TestValidateMetadata(t *testing.T) {
	cases := []struct {
		Name          string
		Metadata      string
		ExpectedError string
	}{
		{
			Name:     "Valid",
			Metadata: "Metadata-Version: 2.1\nName: demo\nVersion: 1.0.0\n",
		},
		{
			Name:          "MissingVersion",
			Metadata:      "Metadata-Version: 2.1\nName: demo\n",
			ExpectedError: "Version",
		},
		{
			Name:          "Empty",
			Metadata:      "",
			ExpectedError: "Metadata-Version, Name, Version",
		},
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			err := ValidateMetadata(tc.Metadata)

			if tc.ExpectedError == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, strings.HasSuffix(err.Error(), tc.ExpectedError))
		})
	}
}
