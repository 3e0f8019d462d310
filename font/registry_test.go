package font

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryEmptyDir(t *testing.T) {
	reg := NewRegistry(t.TempDir())
	assert.Empty(t, reg.Families())

	_, err := reg.Resolve("No Such Family")
	assert.ErrorIs(t, err, ErrFontNotFound)
}

func TestRegistrySkipsUnparsableFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.ttf"), []byte("not a font"), 0o644))

	reg := NewRegistry(dir)
	assert.Empty(t, reg.Families(), "garbage files must be skipped, not fatal")
}

func TestRegistryMissingDirIsNotFatal(t *testing.T) {
	reg := NewRegistry(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Empty(t, reg.Families())
}

func TestDefaultDirs(t *testing.T) {
	dirs := DefaultDirs()
	assert.NotEmpty(t, dirs)
	for _, d := range dirs {
		assert.True(t, filepath.IsAbs(d), "dir %q should be absolute", d)
	}
}

func TestAspectStyleBucketsWeight(t *testing.T) {
	assert.Equal(t, StyleRegular, aspectStyle(lmroman10regular.TTF, 0))
	assert.Equal(t, StyleBold, aspectStyle(lmroman10bold.TTF, 0))
	assert.Equal(t, StyleRegular, aspectStyle([]byte("junk"), 0), "unreadable data defaults to regular")
}

func TestResolveIsCaseInsensitive(t *testing.T) {
	reg := &Registry{families: map[string][]FaceRef{
		"fira code": {{Family: "Fira Code", Style: StyleRegular}},
	}}
	refs, err := reg.Resolve("FIRA code")
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "Fira Code", refs[0].Family)

	_, err = reg.Resolve("fira")
	assert.True(t, errors.Is(err, ErrFontNotFound))
}
