package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shebeerrors "github.com/shebe-oss/shebe/internal/errors"
)

func testMeta(sessionID string) Meta {
	return Meta{
		SessionID:     sessionID,
		SchemaVersion: CurrentSchema,
		CreatedAt:     time.Unix(0, 0).UTC(),
		LastIndexedAt: time.Unix(0, 0).UTC(),
		ChunkSize:     500,
		Overlap:       50,
	}
}

// Round-trip: create + add_chunk + commit + open + search surfaces the
// chunk with its stored fields intact.
func TestStore_RoundTrip_SearchSeesCommittedChunk(t *testing.T) {
	root := t.TempDir()

	s, err := Create(root, "sess1", testMeta("sess1"))
	require.NoError(t, err)

	require.NoError(t, s.AddChunk(ChunkDoc{
		FilePath:   "internal/user_service.go",
		ChunkIndex: 0,
		ByteStart:  0,
		ByteEnd:    20,
		Content:    "func getUserById() {}",
	}))
	require.NoError(t, s.Commit())
	require.NoError(t, s.Close())

	opened, err := Open(root, "sess1")
	require.NoError(t, err)
	defer func() { _ = opened.Close() }()

	hits, err := opened.Search("user", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)

	assert.Equal(t, "internal/user_service.go", hits[0].FilePath)
	assert.Equal(t, 0, hits[0].ChunkIndex)
	assert.Equal(t, 0, hits[0].ByteStart)
	assert.Equal(t, 20, hits[0].ByteEnd)
	assert.Equal(t, "func getUserById() {}", hits[0].Content)
	assert.Greater(t, hits[0].Score, 0.0)
}

func TestStore_Search_FindsCamelCaseAndSnakeCase(t *testing.T) {
	root := t.TempDir()
	s, err := Create(root, "sess1", testMeta("sess1"))
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	require.NoError(t, s.AddChunk(ChunkDoc{FilePath: "a.go", ChunkIndex: 0, ByteStart: 0, ByteEnd: 10, Content: "func getUserById() {}"}))
	require.NoError(t, s.AddChunk(ChunkDoc{FilePath: "b.py", ChunkIndex: 0, ByteStart: 0, ByteEnd: 10, Content: "def get_user_by_id():"}))
	require.NoError(t, s.Commit())

	hits, err := s.Search("user", 10)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestStore_Search_PathTokensAreSearchable(t *testing.T) {
	root := t.TempDir()
	s, err := Create(root, "sess1", testMeta("sess1"))
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	require.NoError(t, s.AddChunk(ChunkDoc{FilePath: "internal/user_service.go", ChunkIndex: 0, ByteStart: 0, ByteEnd: 5, Content: "package internal"}))
	require.NoError(t, s.Commit())

	hits, err := s.Search("file_path:userservice", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "internal/user_service.go", hits[0].FilePath)
}

func TestCreate_AlreadyExists(t *testing.T) {
	root := t.TempDir()
	s, err := Create(root, "sess1", testMeta("sess1"))
	require.NoError(t, err)
	_ = s.Close()

	_, err = Create(root, "sess1", testMeta("sess1"))
	require.Error(t, err)
	assert.Equal(t, shebeerrors.AlreadyExists, shebeerrors.CodeOf(err))
}

func TestOpen_NotFound(t *testing.T) {
	root := t.TempDir()
	_, err := Open(root, "does-not-exist")
	require.Error(t, err)
	assert.Equal(t, shebeerrors.NotFound, shebeerrors.CodeOf(err))
}

func TestOpen_SchemaMismatch(t *testing.T) {
	root := t.TempDir()
	meta := testMeta("sess1")
	meta.SchemaVersion = CurrentSchema - 1
	s, err := Create(root, "sess1", meta)
	require.NoError(t, err)
	_ = s.Close()

	_, err = Open(root, "sess1")
	require.Error(t, err)
	assert.Equal(t, shebeerrors.SchemaMismatch, shebeerrors.CodeOf(err))
}

func TestStore_MetaRoundTrip(t *testing.T) {
	root := t.TempDir()
	s, err := Create(root, "sess1", testMeta("sess1"))
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	m, err := s.ReadMeta()
	require.NoError(t, err)
	assert.Equal(t, "sess1", m.SessionID)

	m.FilesIndexed = 7
	require.NoError(t, s.WriteMeta(m))

	reread, err := s.ReadMeta()
	require.NoError(t, err)
	assert.Equal(t, 7, reread.FilesIndexed)
}

func TestDeleteSession_IdempotentOnNotFound(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, DeleteSession(root, "never-existed"))
}

func TestDeleteSession_RemovesDirectory(t *testing.T) {
	root := t.TempDir()
	s, err := Create(root, "sess1", testMeta("sess1"))
	require.NoError(t, err)
	_ = s.Close()

	require.NoError(t, DeleteSession(root, "sess1"))
	_, err = Open(root, "sess1")
	require.Error(t, err)
	assert.Equal(t, shebeerrors.NotFound, shebeerrors.CodeOf(err))
}

func TestSizeOnDisk_SumsRegularFiles(t *testing.T) {
	root := t.TempDir()
	s, err := Create(root, "sess1", testMeta("sess1"))
	require.NoError(t, err)
	require.NoError(t, s.AddChunk(ChunkDoc{FilePath: "a.go", ChunkIndex: 0, ByteStart: 0, ByteEnd: 5, Content: "hello world this is a chunk of text"}))
	require.NoError(t, s.Commit())
	_ = s.Close()

	size, err := SizeOnDisk(root, "sess1")
	require.NoError(t, err)
	assert.Greater(t, size, int64(0))
}

func TestValidate_ReportsMismatchAndAutoRepairFixesIt(t *testing.T) {
	root := t.TempDir()
	s, err := Create(root, "sess1", testMeta("sess1"))
	require.NoError(t, err)
	require.NoError(t, s.AddChunk(ChunkDoc{FilePath: "a.go", ChunkIndex: 0, ByteStart: 0, ByteEnd: 5, Content: "hello"}))
	require.NoError(t, s.Commit())
	_ = s.Close()

	report, err := Validate(root, "sess1")
	require.NoError(t, err)
	assert.False(t, report.Valid)
	assert.False(t, report.FilesIndexedOK)
	assert.False(t, report.ChunksCreatedOK)

	require.NoError(t, AutoRepair(root, "sess1"))

	report, err = Validate(root, "sess1")
	require.NoError(t, err)
	assert.True(t, report.FilesIndexedOK)
	assert.True(t, report.ChunksCreatedOK)
}

func TestGetChunk_ExactMatchByFilePathAndIndex(t *testing.T) {
	root := t.TempDir()
	s, err := Create(root, "sess1", testMeta("sess1"))
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	require.NoError(t, s.AddChunk(ChunkDoc{FilePath: "a.go", ChunkIndex: 0, ByteStart: 0, ByteEnd: 5, Content: "first"}))
	require.NoError(t, s.AddChunk(ChunkDoc{FilePath: "a.go", ChunkIndex: 1, ByteStart: 5, ByteEnd: 10, Content: "second"}))
	require.NoError(t, s.Commit())

	chunk, ok, err := s.GetChunk("a.go", 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a.go", chunk.FilePath)
	assert.Equal(t, 1, chunk.ChunkIndex)
	assert.Equal(t, 5, chunk.ByteStart)
	assert.Equal(t, 10, chunk.ByteEnd)
	assert.Equal(t, "second", chunk.Content)
}

func TestGetChunk_UnknownChunkReturnsNotOK(t *testing.T) {
	root := t.TempDir()
	s, err := Create(root, "sess1", testMeta("sess1"))
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	_, ok, err := s.GetChunk("missing.go", 0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValidateSessionID(t *testing.T) {
	require.NoError(t, ValidateSessionID("abc-123_DEF"))
	require.Error(t, ValidateSessionID(""))
	require.Error(t, ValidateSessionID("has a space"))
}

func TestSessionDir_NestedUnderIndexRoot(t *testing.T) {
	assert.Equal(t, filepath.Join("/data", "s1"), sessionDir("/data", "s1"))
}
