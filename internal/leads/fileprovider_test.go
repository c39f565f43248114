package leads

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const datasetYAML = `
businesses:
  - name: Harbor Lights Dental
    industry: dental clinic
    contact_name: Maria Vasquez
    contact_title: Owner
    contact_email: maria@harborlightsdental.example
  - name: Summit Auto Repair
    industry: auto repair
    contact_name: Janet Muir
    contact_title: Office Manager
    contact_email: janet@summitautorepair.example
`

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "businesses.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFileProviderLoads(t *testing.T) {
	p, err := NewFileProvider(writeDataset(t, datasetYAML), false)
	require.NoError(t, err)
	defer p.Close()

	rows, err := p.Businesses(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Harbor Lights Dental", rows[0].Name)
	assert.Equal(t, "Owner", rows[0].ContactTitle)
	assert.Equal(t, "janet@summitautorepair.example", rows[1].ContactEmail)
}

func TestFileProviderMissingFile(t *testing.T) {
	_, err := NewFileProvider(filepath.Join(t.TempDir(), "absent.yaml"), false)
	assert.Error(t, err)
}

func TestFileProviderMalformedFile(t *testing.T) {
	_, err := NewFileProvider(writeDataset(t, "businesses: ["), false)
	assert.Error(t, err)
}

func TestFileProviderReload(t *testing.T) {
	path := writeDataset(t, datasetYAML)
	p, err := NewFileProvider(path, false)
	require.NoError(t, err)
	defer p.Close()

	extra := datasetYAML + `
  - name: Bluebird Bakery
    industry: bakery
    contact_name: Sophie Tran
    contact_title: Owner
    contact_email: sophie@bluebirdbakery.example
`
	require.NoError(t, os.WriteFile(path, []byte(extra), 0644))
	require.NoError(t, p.reload())

	rows, err := p.Businesses(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestFileProviderQualification(t *testing.T) {
	p, err := NewFileProvider(writeDataset(t, datasetYAML), false)
	require.NoError(t, err)
	defer p.Close()

	q := NewQualifier(p)
	qualified, err := q.FindAndQualify(context.Background(), 5, nil)
	require.NoError(t, err)
	require.Len(t, qualified, 1)
	assert.Equal(t, "Harbor Lights Dental", qualified[0].Name)
}
