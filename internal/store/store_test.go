package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-conf-keeper/internal/logger"
)

// writeStoreFile creates an INI file under a fresh temp dir and returns its
// path.
func writeStoreFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// openTestStore opens an existing file with silenced diagnostics.
func openTestStore(t *testing.T, path string, opts ...Option) *Store {
	t.Helper()
	s, err := Open(path, append([]Option{WithLogger(logger.Nop())}, opts...)...)
	require.NoError(t, err)
	return s
}

// stubExit replaces the process-exit hook for the duration of the test and
// returns a pointer to the last recorded status code (-1 when never called).
func stubExit(t *testing.T) *int {
	t.Helper()
	code := -1
	orig := osExit
	osExit = func(c int) { code = c }
	t.Cleanup(func() { osExit = orig })
	return &code
}

// TestOpen_EmptyPath verifies that Open rejects an empty path outright.
func TestOpen_EmptyPath(t *testing.T) {
	s, err := Open("")
	require.ErrorIs(t, err, ErrEmptyPath)
	assert.Nil(t, s)
}

// TestOpen_UnknownEncoding verifies that an unrecognized charset name is
// rejected before any file access.
func TestOpen_UnknownEncoding(t *testing.T) {
	path := writeStoreFile(t, "")
	s, err := Open(path, WithLogger(logger.Nop()), WithEncoding("no-such-charset"))
	require.ErrorIs(t, err, ErrUnknownEncoding)
	assert.Nil(t, s)
}

// TestOpen_ExistingFile verifies that an existing file is loaded as-is.
func TestOpen_ExistingFile(t *testing.T) {
	path := writeStoreFile(t, "[app]\nname = demo\n")
	s := openTestStore(t, path)

	got, ok := s.Read("app", "name", nil, true)
	require.True(t, ok)
	assert.Equal(t, "demo", got)
}

// TestOpen_MissingFileNonInteractive verifies that a missing file aborts the
// process when no operator is available to confirm creation.
func TestOpen_MissingFileNonInteractive(t *testing.T) {
	code := stubExit(t)
	path := filepath.Join(t.TempDir(), "absent.ini")

	_, err := Open(path, WithLogger(logger.Nop()))

	require.NoError(t, err)
	assert.Equal(t, 1, *code)
}

// TestOpen_MissingFileInteractiveConfirmed verifies that answering yes to
// the create prompt writes an empty file immediately.
func TestOpen_MissingFileInteractiveConfirmed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.ini")
	var out strings.Builder

	s, err := Open(path,
		WithLogger(logger.Nop()),
		WithInteractive(true),
		WithPrompt(strings.NewReader("y\n"), &out),
	)

	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Contains(t, out.String(), path+" is not exist. Create it? [Y/n]")
	assert.FileExists(t, path)
}

// TestOpen_MissingFileInteractiveBlankDefaultsToYes verifies that a blank
// answer falls back to the default "y" and the file is created.
func TestOpen_MissingFileInteractiveBlankDefaultsToYes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.ini")

	_, err := Open(path,
		WithLogger(logger.Nop()),
		WithInteractive(true),
		WithPrompt(strings.NewReader("\n"), &strings.Builder{}),
	)

	require.NoError(t, err)
	assert.FileExists(t, path)
}

// TestOpen_MissingFileInteractiveDeclined verifies that answering no leaves
// the filesystem untouched while the store stays usable in memory.
func TestOpen_MissingFileInteractiveDeclined(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.ini")

	s, err := Open(path,
		WithLogger(logger.Nop()),
		WithInteractive(true),
		WithPrompt(strings.NewReader("n\n"), &strings.Builder{}),
	)

	require.NoError(t, err)
	require.NotNil(t, s)
	assert.NoFileExists(t, path)
}

// TestWrite_PersistsImmediately verifies that Write with persist rewrites
// the backing file.
func TestWrite_PersistsImmediately(t *testing.T) {
	path := writeStoreFile(t, "[app]\nname = demo\n")
	s := openTestStore(t, path)

	s.Write("app", "mode", "fast", true)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "mode")
	assert.Contains(t, string(data), "fast")
}

// TestWrite_NoPersistLeavesFileUntouched verifies that persist=false keeps
// the change in memory only.
func TestWrite_NoPersistLeavesFileUntouched(t *testing.T) {
	original := "[app]\nname = demo\n"
	path := writeStoreFile(t, original)
	s := openTestStore(t, path)

	s.Write("app", "mode", "fast", false)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
}

// TestWrite_CreatesMissingSection verifies that writing into an unknown
// section creates it.
func TestWrite_CreatesMissingSection(t *testing.T) {
	path := writeStoreFile(t, "[app]\nname = demo\n")
	s := openTestStore(t, path)

	s.Write("extra", "k", "v", true)

	got, ok := s.Read("extra", "k", nil, true)
	require.True(t, ok)
	assert.Equal(t, "v", got)
}

// TestWrite_EmptySectionOrKeyExits verifies the fatal misuse path.
func TestWrite_EmptySectionOrKeyExits(t *testing.T) {
	path := writeStoreFile(t, "[app]\nname = demo\n")
	s := openTestStore(t, path)

	t.Run("empty section", func(t *testing.T) {
		code := stubExit(t)
		s.Write("", "k", "v", false)
		assert.Equal(t, 1, *code)
	})

	t.Run("empty key", func(t *testing.T) {
		code := stubExit(t)
		s.Write("app", "", "v", false)
		assert.Equal(t, 1, *code)
	})
}

// TestWrite_UnsavedChangeSurvivesReload verifies that a non-persisted write
// is still visible after the implicit reload of the next accessor call.
func TestWrite_UnsavedChangeSurvivesReload(t *testing.T) {
	path := writeStoreFile(t, "")
	s := openTestStore(t, path)

	s.Write("sec", "b", "2", false)
	s.Write("sec", "a", "1", false)
	require.NoError(t, s.Save())

	got, ok := s.Read("sec", "b", nil, true)
	require.True(t, ok)
	assert.Equal(t, "2", got)
}

// TestReload_FileWinsOnCollision verifies that an external edit overrides an
// unsaved in-memory value for the same key, while unrelated unsaved keys
// survive.
func TestReload_FileWinsOnCollision(t *testing.T) {
	path := writeStoreFile(t, "[app]\nname = demo\n")
	s := openTestStore(t, path)

	s.Write("app", "name", "memory", false)
	s.Write("app", "mode", "fast", false)
	require.NoError(t, os.WriteFile(path, []byte("[app]\nname = disk\n"), 0o644))

	name, ok := s.Read("app", "name", nil, true)
	require.True(t, ok)
	assert.Equal(t, "disk", name)

	mode, ok := s.Read("app", "mode", nil, true)
	require.True(t, ok)
	assert.Equal(t, "fast", mode)
}

// TestSave_SortsKeysWithinSections verifies that serialization re-orders
// keys lexicographically inside every section.
func TestSave_SortsKeysWithinSections(t *testing.T) {
	path := writeStoreFile(t, "")
	s := openTestStore(t, path)

	s.Write("sec", "b", "2", false)
	s.Write("sec", "a", "1", false)
	require.NoError(t, s.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Less(t, strings.Index(content, "a = 1"), strings.Index(content, "b = 2"))
}

// TestExport_RefusesExistingTarget verifies that an existing file is never
// clobbered without force and keeps its contents.
func TestExport_RefusesExistingTarget(t *testing.T) {
	path := writeStoreFile(t, "[app]\nname = demo\n")
	s := openTestStore(t, path)

	target := filepath.Join(t.TempDir(), "out.ini")
	require.NoError(t, os.WriteFile(target, []byte("precious"), 0o644))

	ok := s.Export(target, false)

	assert.False(t, ok)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "precious", string(data))
}

// TestExport_ForceOverwrites verifies that force replaces an existing
// target with the serialized store.
func TestExport_ForceOverwrites(t *testing.T) {
	path := writeStoreFile(t, "[app]\nname = demo\n")
	s := openTestStore(t, path)

	target := filepath.Join(t.TempDir(), "out.ini")
	require.NoError(t, os.WriteFile(target, []byte("precious"), 0o644))

	ok := s.Export(target, true)

	assert.True(t, ok)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name")
	assert.NotContains(t, string(data), "precious")
}

// TestExport_NewTarget verifies export to a fresh path succeeds.
func TestExport_NewTarget(t *testing.T) {
	path := writeStoreFile(t, "[app]\nname = demo\n")
	s := openTestStore(t, path)

	target := filepath.Join(t.TempDir(), "copy.ini")
	assert.True(t, s.Export(target, false))
	assert.FileExists(t, target)
}

// TestRead_SeesExternalEdits verifies that a change made to the file by
// another writer is visible to the next accessor call.
func TestRead_SeesExternalEdits(t *testing.T) {
	path := writeStoreFile(t, "[app]\nname = demo\n")
	s := openTestStore(t, path)

	require.NoError(t, os.WriteFile(path, []byte("[app]\nname = edited\n"), 0o644))

	got, ok := s.Read("app", "name", nil, true)
	require.True(t, ok)
	assert.Equal(t, "edited", got)
}

// TestSections verifies section enumeration hides the implicit unnamed
// default section.
func TestSections(t *testing.T) {
	path := writeStoreFile(t, "[one]\na = 1\n[two]\nb = 2\n")
	s := openTestStore(t, path)

	assert.Equal(t, []string{"one", "two"}, s.Sections())
}

// TestKeysAndItems verifies key enumeration and item snapshots.
func TestKeysAndItems(t *testing.T) {
	path := writeStoreFile(t, "[app]\nname = demo\nmode = fast\n")
	s := openTestStore(t, path)

	assert.Equal(t, []string{"name", "mode"}, s.Keys("app"))
	assert.Equal(t, map[string]string{"name": "demo", "mode": "fast"}, s.Items("app"))
	assert.Nil(t, s.Keys("missing"))
	assert.Nil(t, s.Items("missing"))
}

// TestEncoding_RoundTrip verifies that values survive a write/read cycle
// through a non-UTF-8 charset and that the file really holds the legacy
// byte form.
func TestEncoding_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latin.ini")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	s := openTestStore(t, path, WithEncoding("ISO-8859-1"))
	s.Write("app", "greeting", "café", true)

	got, ok := s.Read("app", "greeting", nil, true)
	require.True(t, ok)
	assert.Equal(t, "café", got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\xe9", "expected ISO-8859-1 byte for é")
	assert.NotContains(t, string(data), "café", "file must not hold the UTF-8 form")
}
