package storage

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFiles(t *testing.T) *Files {
	t.Helper()
	f, err := New(t.TempDir())
	require.NoError(t, err)
	return f
}

func TestNewCreatesSubdirectories(t *testing.T) {
	f := newFiles(t)
	for _, dir := range []string{DirContracts, DirPosts} {
		info, err := os.Stat(filepath.Join(f.Root, dir))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestSaveBase64NamesFileByPrefixAndTimestamp(t *testing.T) {
	f := newFiles(t)
	payload := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString([]byte("%PDF-1.4"))

	rel, err := f.SaveBase64(DirContracts, "contrato", payload)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^contracts/contrato-\d+\.pdf$`), rel)

	abs, err := f.Abs(rel)
	require.NoError(t, err)
	data, err := os.ReadFile(abs)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), data)
}

func TestSaveBase64AcceptsBareBase64(t *testing.T) {
	f := newFiles(t)
	rel, err := f.SaveBase64(DirPosts, "post", base64.StdEncoding.EncodeToString([]byte("img")))
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^posts/post-\d+\.bin$`), rel)
}

func TestSaveBase64RejectsGarbage(t *testing.T) {
	f := newFiles(t)
	_, err := f.SaveBase64(DirPosts, "post", "isto não é base64!!!")
	assert.Error(t, err)
}

func TestDecodeDataURIExtensions(t *testing.T) {
	cases := []struct {
		media string
		ext   string
	}{
		{"application/pdf", ".pdf"},
		{"image/png", ".png"},
		{"image/jpeg", ".jpg"},
		{"image/webp", ".webp"},
		{"video/mp4", ".bin"},
	}
	for _, tc := range cases {
		raw := "data:" + tc.media + ";base64," + base64.StdEncoding.EncodeToString([]byte("x"))
		_, ext, err := DecodeDataURI(raw)
		require.NoError(t, err, tc.media)
		assert.Equal(t, tc.ext, ext)
	}
}

func TestAbsRejectsTraversal(t *testing.T) {
	f := newFiles(t)
	_, err := f.Abs("../../etc/passwd")
	assert.ErrorIs(t, err, ErrOutsideRoot)

	abs, err := f.Abs("contracts/contrato-1.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.Root, "contracts", "contrato-1.pdf"), abs)
}

func TestRemoveIgnoresMissingFile(t *testing.T) {
	f := newFiles(t)
	assert.NoError(t, f.Remove("posts/post-123.png"))
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "meu_contrato.pdf", sanitizeName("meu contrato.pdf"))
	assert.Equal(t, "a.pdf", sanitizeName("../../a.pdf"))
	assert.Equal(t, "arquivo", sanitizeName("???"))
}
