package prune

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSpecs(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "extra.tsv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestParseSpecsFile_NamesAndComments(t *testing.T) {
	path := writeSpecs(t, "# extra resources\nmounts.log\ncustom_dir\tdir\n\n")

	resources, err := ParseSpecsFile(path)
	require.NoError(t, err)
	require.Len(t, resources, 2)
	assert.Equal(t, "mounts.log", resources[0].Name)
	assert.Equal(t, "custom_dir", resources[1].Name)
}

func TestParseSpecsFile_RejectsEscapingPaths(t *testing.T) {
	_, err := ParseSpecsFile(writeSpecs(t, "../outside.log\n"))
	require.Error(t, err)

	_, err = ParseSpecsFile(writeSpecs(t, "/etc/passwd\n"))
	require.Error(t, err)
}

func TestParseSpecsFile_Missing(t *testing.T) {
	_, err := ParseSpecsFile(filepath.Join(t.TempDir(), "absent.tsv"))
	require.Error(t, err)
}

func TestRun_SpecsExtendPassThrough(t *testing.T) {
	src := buildSourceTree(t)
	writeLog(t, src, "mounts.log", `{"mount":"/mnt/data"}`)

	specs := writeSpecs(t, "mounts.log\n")

	dst := t.TempDir()
	runPipeline(t, src, dst, []string{"team_alpha"}, Options{SpecsFile: specs})

	assert.FileExists(t, filepath.Join(dst, "mounts.log"))
}
