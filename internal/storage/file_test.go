package storage

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	apperrors "github.com/darkkaiser/mws-feed/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()

	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	s.now = func() time.Time { return fixedTime }
	return s
}

func TestNewFileStore(t *testing.T) {
	t.Parallel()

	t.Run("디렉토리 생성", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "feeds")

		s, err := NewFileStore(dir)
		require.NoError(t, err)
		assert.Equal(t, dir, s.Dir())
		assert.DirExists(t, dir)
	})

	t.Run("파일을 디렉토리로 사용", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file_as_dir")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

		s, err := NewFileStore(path)
		require.Error(t, err)
		assert.Nil(t, s)
		assert.True(t, apperrors.Is(err, apperrors.System))
		assert.Contains(t, err.Error(), "디렉토리 접근 불가")
	})
}

func TestFileStore_Save(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	data := []byte("<?xml version=\"1.0\"?>\n<AmazonEnvelope/>")

	path, err := s.Save("AcmeStore", data)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(s.Dir(), "product-feed-acme-store-20240301153000.xml"), path)

	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, saved)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	tmp, err := filepath.Glob(filepath.Join(s.Dir(), "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, tmp, "임시 파일이 남아서는 안 됩니다")
}

func TestFileStore_Save_SameSecond(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	first, err := s.Save("acme", []byte("1"))
	require.NoError(t, err)
	second, err := s.Save("acme", []byte("2"))
	require.NoError(t, err)

	assert.Equal(t, "product-feed-acme-20240301153000.xml", filepath.Base(first))
	assert.Equal(t, "product-feed-acme-20240301153000-2.xml", filepath.Base(second))

	content, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "1", string(content), "기존 파일을 덮어쓰지 않아야 합니다")
}

func TestFileStore_Save_Concurrent(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	const n = 10
	paths := make([]string, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := s.Save("acme", []byte("feed"))
			assert.NoError(t, err)
			paths[i] = p
		}()
	}
	wg.Wait()

	unique := make(map[string]struct{}, n)
	for _, p := range paths {
		unique[p] = struct{}{}
	}
	assert.Len(t, unique, n, "동시에 저장해도 파일 이름이 겹치지 않아야 합니다")
}

func TestFileStore_Save_Errors(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	t.Run("빈 판매자 ID", func(t *testing.T) {
		_, err := s.Save("  ", []byte("x"))
		assert.ErrorIs(t, err, ErrEmptyMerchantID)
	})

	t.Run("경로 문자가 포함된 판매자 ID", func(t *testing.T) {
		path, err := s.Save("../../etc/passwd", []byte("x"))
		require.NoError(t, err)
		assert.Equal(t, s.Dir(), filepath.Dir(path), "저장 디렉토리 밖에 저장되어서는 안 됩니다")
		assert.False(t, strings.Contains(filepath.Base(path), ".."))
	})
}

func TestFileStore_ResolveSafePath(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	tests := []struct {
		name     string
		filename string
		wantErr  bool
	}{
		{"일반 파일 이름", "product-feed-acme.xml", false},
		{"상위 디렉토리", "../escape.xml", true},
		{"하위 디렉토리", "sub/feed.xml", true},
		{"빈 이름", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := s.resolveSafePath(tt.filename)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrPathTraversalDetected)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(s.Dir(), tt.filename), path)
		})
	}
}

func TestFileStore_CleanupStaleTempFiles(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	stale := filepath.Join(s.Dir(), "product-feed-123.tmp")
	fresh := filepath.Join(s.Dir(), "product-feed-456.tmp")
	other := filepath.Join(s.Dir(), "notes.tmp")
	for _, p := range []string{stale, fresh, other} {
		require.NoError(t, os.WriteFile(p, []byte("x"), 0644))
	}
	old := time.Now().Add(-2 * staleTempFileAge)
	require.NoError(t, os.Chtimes(stale, old, old))
	require.NoError(t, os.Chtimes(other, old, old))

	s.cleanupStaleTempFiles()

	assert.NoFileExists(t, stale)
	assert.FileExists(t, fresh)
	assert.FileExists(t, other, "패턴과 일치하지 않는 파일은 유지되어야 합니다")
}
