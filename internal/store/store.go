// Package store is the Storage component (C3): a per-session Bleve-backed
// BM25 inverted index plus the session's meta.json sidecar file.
package store

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/blevesearch/bleve/v2"

	shebeerrors "github.com/shebe-oss/shebe/internal/errors"
)

// Store is a handle onto one session's on-disk index and metadata.
type Store struct {
	indexRoot string
	sessionID string

	mu    sync.Mutex
	index bleve.Index
	batch *bleve.Batch
}

// Create initializes a new, empty session directory and index, writing the
// initial meta.json. Fails with AlreadyExists if the session directory
// already exists.
func Create(indexRoot, sessionID string, meta Meta) (*Store, error) {
	if err := ValidateSessionID(sessionID); err != nil {
		return nil, err
	}
	dir := sessionDir(indexRoot, sessionID)
	if _, err := os.Stat(dir); err == nil {
		return nil, shebeerrors.Newf(shebeerrors.AlreadyExists, "session %q already exists", sessionID)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, shebeerrors.Wrap(shebeerrors.Internal, err)
	}

	im, err := buildIndexMapping()
	if err != nil {
		return nil, err
	}
	idx, err := bleve.New(indexPath(indexRoot, sessionID), im)
	if err != nil {
		return nil, shebeerrors.Wrap(shebeerrors.Internal, err)
	}

	if err := writeMeta(indexRoot, sessionID, meta); err != nil {
		_ = idx.Close()
		return nil, err
	}

	return &Store{indexRoot: indexRoot, sessionID: sessionID, index: idx, batch: idx.NewBatch()}, nil
}

// Open opens an existing session's index. Fails with NotFound if the
// session directory is missing, SchemaMismatch if the stored schema
// version doesn't equal CurrentSchema.
func Open(indexRoot, sessionID string) (*Store, error) {
	if err := ValidateSessionID(sessionID); err != nil {
		return nil, err
	}
	dir := sessionDir(indexRoot, sessionID)
	if _, err := os.Stat(dir); err != nil {
		return nil, shebeerrors.Newf(shebeerrors.NotFound, "session %q not found", sessionID)
	}

	meta, err := readMeta(indexRoot, sessionID)
	if err != nil {
		return nil, err
	}
	if meta.SchemaVersion != CurrentSchema {
		return nil, shebeerrors.Newf(shebeerrors.SchemaMismatch,
			"session %q has schema_version %d, current is %d", sessionID, meta.SchemaVersion, CurrentSchema)
	}

	idx, err := bleve.Open(indexPath(indexRoot, sessionID))
	if err != nil {
		return nil, shebeerrors.Wrapf(shebeerrors.Internal, err, "opening index for session %q", sessionID)
	}

	return &Store{indexRoot: indexRoot, sessionID: sessionID, index: idx, batch: idx.NewBatch()}, nil
}

// OpenIgnoringSchema opens a session's index without enforcing the schema
// check, for the read-only sub-state where stale sessions may still be
// queried. Callers are responsible for keeping indexing calls away from
// a Store obtained this way.
func OpenIgnoringSchema(indexRoot, sessionID string) (*Store, error) {
	dir := sessionDir(indexRoot, sessionID)
	if _, err := os.Stat(dir); err != nil {
		return nil, shebeerrors.Newf(shebeerrors.NotFound, "session %q not found", sessionID)
	}
	idx, err := bleve.Open(indexPath(indexRoot, sessionID))
	if err != nil {
		return nil, shebeerrors.Wrapf(shebeerrors.Internal, err, "opening index for session %q", sessionID)
	}
	return &Store{indexRoot: indexRoot, sessionID: sessionID, index: idx, batch: idx.NewBatch()}, nil
}

// chunkDocID derives a stable document ID from a chunk's file path and
// index so re-adding the same chunk overwrites rather than duplicates it.
func chunkDocID(filePath string, chunkIndex int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s#%d", filePath, chunkIndex)))
	return hex.EncodeToString(sum[:])
}

// AddChunk stages one chunk document. Staged documents are not visible to
// Search until Commit is called.
func (s *Store) AddChunk(c ChunkDoc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := indexedDocument{
		FilePath:   c.FilePath,
		Content:    c.Content,
		ChunkIndex: c.ChunkIndex,
		ByteStart:  c.ByteStart,
		ByteEnd:    c.ByteEnd,
	}
	if err := s.batch.Index(chunkDocID(c.FilePath, c.ChunkIndex), doc); err != nil {
		return shebeerrors.Wrap(shebeerrors.Internal, err)
	}
	return nil
}

// Commit flushes staged documents to the on-disk index.
func (s *Store) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.batch.Size() == 0 {
		return nil
	}
	if err := s.index.Batch(s.batch); err != nil {
		return shebeerrors.Wrap(shebeerrors.Internal, err)
	}
	s.batch = s.index.NewBatch()
	return nil
}

// Search executes a BM25 ranked query against the "content"/"file_path"
// fields (default field "content") and returns up to k hits ordered by
// score descending.
func (s *Store) Search(queryStr string, k int) ([]SearchHit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := bleve.NewQueryStringQuery(queryStr)
	req := bleve.NewSearchRequestOptions(q, k, 0, false)
	req.Fields = []string{"file_path", "content", "chunk_index", "byte_start", "byte_end"}

	result, err := s.index.Search(req)
	if err != nil {
		return nil, shebeerrors.Wrap(shebeerrors.Internal, err)
	}

	hits := make([]SearchHit, 0, len(result.Hits))
	for _, hit := range result.Hits {
		hits = append(hits, SearchHit{
			FilePath:   stringField(hit.Fields, "file_path"),
			Content:    stringField(hit.Fields, "content"),
			ChunkIndex: intField(hit.Fields, "chunk_index"),
			ByteStart:  intField(hit.Fields, "byte_start"),
			ByteEnd:    intField(hit.Fields, "byte_end"),
			Score:      hit.Score,
		})
	}
	return hits, nil
}

func stringField(fields map[string]interface{}, name string) string {
	v, _ := fields[name].(string)
	return v
}

func intField(fields map[string]interface{}, name string) int {
	switch v := fields[name].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// AllFilePaths returns the distinct set of file_path values stored in the
// index, used by list_dir/find_file and by Validate.
func (s *Store) AllFilePaths() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docCount, err := s.index.DocCount()
	if err != nil {
		return nil, shebeerrors.Wrap(shebeerrors.Internal, err)
	}
	if docCount == 0 {
		return nil, nil
	}

	req := bleve.NewSearchRequestOptions(bleve.NewMatchAllQuery(), int(docCount), 0, false)
	req.Fields = []string{"file_path"}
	result, err := s.index.Search(req)
	if err != nil {
		return nil, shebeerrors.Wrap(shebeerrors.Internal, err)
	}

	seen := make(map[string]bool)
	var paths []string
	for _, hit := range result.Hits {
		p := stringField(hit.Fields, "file_path")
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		paths = append(paths, p)
	}
	return paths, nil
}

// GetChunk fetches one chunk's stored fields by exact file path and
// chunk index, used by preview_chunk where a tokenized Search query
// would be an imprecise way to look up a specific document. Returns
// ok=false if no such chunk was committed.
func (s *Store) GetChunk(filePath string, chunkIndex int) (ChunkDoc, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := chunkDocID(filePath, chunkIndex)
	req := bleve.NewSearchRequestOptions(bleve.NewDocIDQuery([]string{id}), 1, 0, false)
	req.Fields = []string{"file_path", "content", "chunk_index", "byte_start", "byte_end"}
	result, err := s.index.Search(req)
	if err != nil {
		return ChunkDoc{}, false, shebeerrors.Wrap(shebeerrors.Internal, err)
	}
	if len(result.Hits) == 0 {
		return ChunkDoc{}, false, nil
	}
	hit := result.Hits[0]
	return ChunkDoc{
		FilePath:   stringField(hit.Fields, "file_path"),
		Content:    stringField(hit.Fields, "content"),
		ChunkIndex: intField(hit.Fields, "chunk_index"),
		ByteStart:  intField(hit.Fields, "byte_start"),
		ByteEnd:    intField(hit.Fields, "byte_end"),
	}, true, nil
}

// DocCount returns the total number of committed chunk documents.
func (s *Store) DocCount() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.index.DocCount()
	if err != nil {
		return 0, shebeerrors.Wrap(shebeerrors.Internal, err)
	}
	return int(n), nil
}

// ReadMeta reads meta.json for this session.
func (s *Store) ReadMeta() (Meta, error) {
	return readMeta(s.indexRoot, s.sessionID)
}

// WriteMeta atomically rewrites meta.json for this session.
func (s *Store) WriteMeta(m Meta) error {
	return writeMeta(s.indexRoot, s.sessionID, m)
}

// Close releases the underlying Bleve index handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index == nil {
		return nil
	}
	err := s.index.Close()
	s.index = nil
	if err != nil {
		return shebeerrors.Wrap(shebeerrors.Internal, err)
	}
	return nil
}

// DeleteSession removes a session directory recursively. Idempotent: a
// missing directory is not an error.
func DeleteSession(indexRoot, sessionID string) error {
	dir := sessionDir(indexRoot, sessionID)
	if err := os.RemoveAll(dir); err != nil {
		return shebeerrors.Wrap(shebeerrors.Internal, err)
	}
	return nil
}

// SizeOnDisk sums the size of every regular file under the session
// directory.
func SizeOnDisk(indexRoot, sessionID string) (int64, error) {
	dir := sessionDir(indexRoot, sessionID)
	var total int64
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.Type().IsRegular() {
			info, err := d.Info()
			if err != nil {
				return err
			}
			total += info.Size()
		}
		return nil
	})
	if err != nil {
		return 0, shebeerrors.Wrap(shebeerrors.Internal, err)
	}
	return total, nil
}
