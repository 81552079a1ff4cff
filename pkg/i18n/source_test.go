package i18n_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/crudkit/pkg/i18n"
)

func TestFileSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.json"), []byte(`{"users": {"title": "Users"}}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{"users":`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blank.json"), []byte("  \n"), 0o600))

	src := i18n.NewFileSource(dir, "json")
	ctx := context.Background()

	t.Run("loads existing language", func(t *testing.T) {
		t.Parallel()
		dict, err := src.Load(ctx, "en")
		require.NoError(t, err)
		got, ok := dict.Translate("users.title")
		assert.True(t, ok)
		assert.Equal(t, "Users", got)
	})

	t.Run("missing file is empty dictionary", func(t *testing.T) {
		t.Parallel()
		dict, err := src.Load(ctx, "fr")
		require.NoError(t, err)
		assert.Empty(t, dict)
	})

	t.Run("blank file is empty dictionary", func(t *testing.T) {
		t.Parallel()
		dict, err := src.Load(ctx, "blank")
		require.NoError(t, err)
		assert.Empty(t, dict)
	})

	t.Run("invalid content", func(t *testing.T) {
		t.Parallel()
		_, err := src.Load(ctx, "broken")
		assert.ErrorIs(t, err, i18n.ErrFailedToParseFile)
	})

	t.Run("path traversal rejected", func(t *testing.T) {
		t.Parallel()
		_, err := src.Load(ctx, "../etc/passwd")
		assert.ErrorIs(t, err, i18n.ErrInvalidLanguageCode)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := src.Load(cctx, "en")
		assert.ErrorIs(t, err, i18n.ErrLoadingCancelled)
	})
}

func TestFSSourceYAML(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"de.yaml": {Data: []byte("users:\n  title: Benutzer\n  count: 2\n")},
	}
	dict, err := i18n.NewFSSource(fsys, ".yaml").Load(context.Background(), "de")
	require.NoError(t, err)

	got, ok := dict.Translate("users.title")
	assert.True(t, ok)
	assert.Equal(t, "Benutzer", got)

	got, ok = dict.Translate("users.count")
	assert.True(t, ok)
	assert.Equal(t, "2", got)
}

func TestFSSourceUnsupportedFormat(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{"en.toml": {Data: []byte("a = 1")}}
	_, err := i18n.NewFSSource(fsys, "toml").Load(context.Background(), "en")
	assert.ErrorIs(t, err, i18n.ErrUnsupportedFileFormat)
}

func TestMapSource(t *testing.T) {
	t.Parallel()

	src := i18n.MapSource{"en": {"a": "b"}}
	dict, err := src.Load(context.Background(), "en")
	require.NoError(t, err)
	assert.Equal(t, i18n.Dictionary{"a": "b"}, dict)

	dict, err = src.Load(context.Background(), "de")
	require.NoError(t, err)
	assert.Empty(t, dict)
}

func TestValidLanguageCode(t *testing.T) {
	t.Parallel()

	for _, code := range []string{"en", "de-AT", "pt_BR", "zh-Hant-TW"} {
		assert.True(t, i18n.ValidLanguageCode(code), code)
	}
	for _, code := range []string{"", "e", "en/..", "../en", "en.json"} {
		assert.False(t, i18n.ValidLanguageCode(code), code)
	}
}
