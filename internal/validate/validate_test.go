package validate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jminer/mirror-sync/internal/config"
)

func TestCheckDestination_Table(t *testing.T) {
	root := t.TempDir()

	existingDir := filepath.Join(root, "existing")
	require.NoError(t, os.MkdirAll(existingDir, 0o755))

	aFile := filepath.Join(root, "file.txt")
	require.NoError(t, os.WriteFile(aFile, []byte("x"), 0o644))

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "existing directory", path: existingDir, wantErr: false},
		{name: "missing directory is created", path: filepath.Join(root, "new", "nested"), wantErr: false},
		{name: "path is a file", path: aFile, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckDestination(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestJob_ValidatesSourcesAndDestinations(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	require.NoError(t, os.MkdirAll(src, 0o755))

	good := config.Job{
		Name: "ok",
		Directories: []config.DirectoryPair{
			{Source: src, Destination: filepath.Join(root, "dest")},
		},
	}
	assert.NoError(t, Job(good))

	bad := config.Job{
		Name: "missing-source",
		Directories: []config.DirectoryPair{
			{Source: filepath.Join(root, "nope"), Destination: filepath.Join(root, "dest2")},
		},
	}
	assert.Error(t, Job(bad))

	badPattern := config.Job{
		Name:    "bad-pattern",
		Exclude: []string{"["},
		Directories: []config.DirectoryPair{
			{Source: src, Destination: filepath.Join(root, "dest3")},
		},
	}
	assert.Error(t, Job(badPattern))
}
