package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// MetadataVersion is the core metadata version stamped into METADATA and PKG-INFO files.
const MetadataVersion = "2.1"

// requiredMetadataFields are the core metadata fields every distribution must carry.
var requiredMetadataFields = []string{
	"Metadata-Version",
	"Name",
	"Version",
}

// RenderMetadata renders the [project] table as a core metadata document, the content of a
// wheel's METADATA file and an sdist's PKG-INFO file. root is the project root used to resolve
// readme and license file references.
func (d Document) RenderMetadata(root string) (string, error) {
	var b strings.Builder

	write := func(field, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%s: %s\n", field, value)
		}
	}

	write("Metadata-Version", MetadataVersion)
	write("Name", d.Project.Name)
	write("Version", d.Project.Version)
	write("Summary", d.Project.Description)
	write("Keywords", strings.Join(d.Project.Keywords, ","))

	for _, author := range d.Project.Authors {
		switch {
		case author.Email != "":
			write("Author-email", formatContact(author))
		default:
			write("Author", author.Name)
		}
	}

	for _, maintainer := range d.Project.Maintainers {
		switch {
		case maintainer.Email != "":
			write("Maintainer-email", formatContact(maintainer))
		default:
			write("Maintainer", maintainer.Name)
		}
	}

	license, err := d.licenseText(root)
	if err != nil {
		return "", err
	}
	write("License", license)

	write("Requires-Python", d.Project.RequiresPython)

	for _, classifier := range d.Project.Classifiers {
		write("Classifier", classifier)
	}

	// Deterministic ordering for map sourced fields.
	for _, label := range sortedKeys(d.Project.URLs) {
		write("Project-URL", fmt.Sprintf("%s, %s", label, d.Project.URLs[label]))
	}

	for _, dep := range d.Project.Dependencies {
		write("Requires-Dist", dep)
	}

	for _, extra := range sortedKeys(d.Project.OptionalDependencies) {
		write("Provides-Extra", extra)
		for _, dep := range d.Project.OptionalDependencies[extra] {
			write("Requires-Dist", fmt.Sprintf("%s; extra == %q", dep, extra))
		}
	}

	if d.Project.Readme != "" {
		write("Description-Content-Type", readmeContentType(d.Project.Readme))

		readme, err := os.ReadFile(filepath.Join(root, d.Project.Readme))
		if err != nil {
			return "", errors.Wrap(err, "read readme")
		}

		b.WriteString("\n")
		b.Write(readme)
	}

	return b.String(), nil
}

// ValidateMetadata checks a rendered core metadata document for the required fields and returns
// an error naming any that are missing.
func ValidateMetadata(metadata string) error {
	lines := strings.Split(metadata, "\n")

	var missing []string

	for _, field := range requiredMetadataFields {
		found := false
		for _, line := range lines {
			if strings.HasPrefix(line, field+": ") {
				found = true
				break
			}
		}

		if !found {
			missing = append(missing, field)
		}
	}

	if len(missing) > 0 {
		return errors.Errorf("metadata missing required fields: %v", strings.Join(missing, ", "))
	}

	return nil
}

// licenseText resolves the license to its textual form, reading the referenced file when the
// license is file based.
func (d Document) licenseText(root string) (string, error) {
	if d.Project.License.Text != "" {
		// Only the first line belongs in the License field.
		text, _, _ := strings.Cut(d.Project.License.Text, "\n")
		return text, nil
	}

	if d.Project.License.File == "" {
		return "", nil
	}

	content, err := os.ReadFile(filepath.Join(root, d.Project.License.File))
	if err != nil {
		return "", errors.Wrap(err, "read license file")
	}

	text, _, _ := strings.Cut(string(content), "\n")

	return strings.TrimSpace(text), nil
}

func formatContact(c Contact) string {
	if c.Name == "" {
		return c.Email
	}
	return fmt.Sprintf("%q <%s>", c.Name, c.Email)
}

func readmeContentType(readme string) string {
	switch strings.ToLower(filepath.Ext(readme)) {
	case ".md":
		return "text/markdown"
	case ".rst":
		return "text/x-rst"
	default:
		return "text/plain"
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
