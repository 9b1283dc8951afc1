package filex

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureSubDir(t *testing.T) {
	tmp := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmp))
	t.Cleanup(func() { _ = os.Chdir(orig) })

	dir, err := EnsureSubDir("data")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestImageDataURI(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "avatar.png")
	require.NoError(t, os.WriteFile(path, []byte{0x89, 0x50, 0x4e, 0x47}, 0o600))

	uri, err := ImageDataURI(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
}

func TestImageDataURI_TooLarge(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "big.png")
	require.NoError(t, os.WriteFile(path, make([]byte, MaxImageBytes+1), 0o600))

	_, err := ImageDataURI(path)
	require.Error(t, err)
}

func TestImageDataURI_Missing(t *testing.T) {
	_, err := ImageDataURI(filepath.Join(t.TempDir(), "nope.png"))
	require.Error(t, err)
}
