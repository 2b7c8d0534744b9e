package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"contentpackage.run/internal/model"
)

func TestTextTable_AddRow(t *testing.T) {
	t.Parallel()

	table := NewTextTable("Entry", "Size")
	table.AddRow("META-INF/vault/filter.xml", 120)
	table.AddRow("jcr_root/.content.xml")

	assert.Equal(t, []string{"Entry", "Size"}, table.Headers())
	assert.Equal(t, [][]string{
		{"META-INF/vault/filter.xml", "120"},
		{"jcr_root/.content.xml", ""},
	}, table.Rows())
}

func TestTextTable_NoHeaders(t *testing.T) {
	t.Parallel()

	table := NewTextTable()
	table.AddRow("a", true)

	assert.Empty(t, table.Headers())
	assert.Equal(t, [][]string{{"a", "true"}}, table.Rows())
}

func TestNodeResultsTable(t *testing.T) {
	t.Parallel()

	table := NodeResultsTable([]NodeFileResult{
		{
			Input: "node/content.json", Output: "out/myName.zip", Role: "aem-author",
			Applied: []string{"content-package"},
		},
		{
			Input: "node/app.conf", Output: "node/app.conf", Role: "aem-author",
			Applied: []string{"file-header-conf", "other"},
		},
	})

	assert.Equal(t, []string{"Input", "Output", "Role", "Processors"}, table.Headers())
	assert.Equal(t, [][]string{
		{"node/content.json", "out/myName.zip", "aem-author", "content-package"},
		{"node/app.conf", "node/app.conf", "aem-author", "file-header-conf,other"},
	}, table.Rows())
}

func TestModelPackagesTable(t *testing.T) {
	t.Parallel()

	table := ModelPackagesTable([]model.ContentPackageFile{
		{Path: "node/content.json", Role: "aem-author", Options: map[string]any{"packageName": "myName"}},
		{Path: "node/other.json", Role: "aem-publish", Options: map[string]any{}},
	})

	assert.Equal(t, []string{"Path", "Role", "Package"}, table.Headers())
	assert.Equal(t, [][]string{
		{"node/content.json", "aem-author", "myName"},
		{"node/other.json", "aem-publish", "-"},
	}, table.Rows())
}
