// Package storage 생성된 피드 문서를 파일 시스템에 저장합니다.
package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/darkkaiser/mws-feed/pkg/concurrency"
	applog "github.com/darkkaiser/mws-feed/pkg/log"
)

// component 피드 저장소 로그의 컴포넌트 이름
const component = "storage.file"

// tempFilePattern 저장 중에 만들어지는 임시 파일의 이름 패턴
const tempFilePattern = "product-feed-*.tmp"

// staleTempFileAge 이 시간보다 오래된 임시 파일은 이전 실행의 잔존 파일로 보고 정리합니다.
const staleTempFileAge = time.Hour

// FileStore 피드 문서를 디렉토리에 원자적으로 저장하는 저장소입니다.
//
// 저장되는 파일 이름은 product-feed-{판매자ID}-{yyyymmddhhmmss}.xml 형식이며,
// 같은 판매자의 피드가 같은 초에 여러 번 저장되면 순번이 붙어 기존 파일을 덮어쓰지 않습니다.
type FileStore struct {
	baseDir string

	// locks 같은 판매자의 파일 이름 결정과 쓰기를 직렬화합니다.
	locks *concurrency.KeyedMutex[string]

	now func() time.Time
}

// NewFileStore dir을 저장 디렉토리로 사용하는 FileStore를 생성합니다.
// 디렉토리가 없으면 만들고, 이전 실행에서 남은 오래된 임시 파일을 백그라운드에서 정리합니다.
func NewFileStore(dir string) (*FileStore, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, NewErrAbsPathConversionFailed(err)
	}

	if err := os.MkdirAll(absDir, 0755); err != nil {
		return nil, NewErrDirectoryAccessFailed(err, absDir)
	}

	s := &FileStore{
		baseDir: absDir,
		locks:   concurrency.NewKeyedMutex[string](),
		now:     time.Now,
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				applog.WithComponentAndFields(component, applog.Fields{
					"dir":   s.baseDir,
					"panic": r,
				}).Error("임시 파일 정리 중단: 백그라운드 작업 패닉 발생")
			}
		}()

		s.cleanupStaleTempFiles()
	}()

	return s, nil
}

// Dir 저장 디렉토리의 절대 경로를 반환합니다.
func (s *FileStore) Dir() string {
	return s.baseDir
}

// Save 피드 문서를 저장하고 저장된 파일의 절대 경로를 반환합니다.
func (s *FileStore) Save(merchantID string, data []byte) (string, error) {
	if strings.TrimSpace(merchantID) == "" {
		return "", ErrEmptyMerchantID
	}

	at := s.now()

	var path string
	err := s.locks.WithLock(strings.ToLower(sanitizeName(merchantID)), func() error {
		for seq := 1; ; seq++ {
			p, err := s.resolveSafePath(feedFilename(merchantID, at, seq))
			if err != nil {
				return err
			}
			if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
				path = p
				break
			}
		}

		return s.writeAtomic(path, data)
	})
	if err != nil {
		return "", err
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"merchant_id": merchantID,
		"path":        path,
		"bytes":       len(data),
	}).Info("피드 파일 저장 완료")

	return path, nil
}

// resolveSafePath 파일 이름을 저장 디렉토리 아래의 절대 경로로 변환합니다.
// 결과 경로가 저장 디렉토리를 벗어나면 ErrPathTraversalDetected를 반환합니다.
func (s *FileStore) resolveSafePath(filename string) (string, error) {
	cleanPath := filepath.Clean(filepath.Join(s.baseDir, filename))

	rel, err := filepath.Rel(s.baseDir, cleanPath)
	if err != nil {
		return "", NewErrPathResolutionFailed(err)
	}

	if rel == "." || strings.HasPrefix(rel, "..") || strings.ContainsRune(rel, filepath.Separator) {
		applog.WithComponentAndFields(component, applog.Fields{
			"filename": filename,
			"base_dir": s.baseDir,
			"path":     cleanPath,
			"rel_path": rel,
		}).Error("파일 경로 생성 차단: 경로 이탈 시도 감지")

		return "", ErrPathTraversalDetected
	}

	return cleanPath, nil
}

// writeAtomic 임시 파일에 쓰고 디스크에 동기화한 뒤 최종 이름으로 바꿉니다.
// 중간에 실패하면 최종 경로에는 아무 파일도 남지 않습니다.
func (s *FileStore) writeAtomic(filename string, data []byte) error {
	dir := filepath.Dir(filename)

	tmpFile, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return NewErrTempFileCreationFailed(err)
	}
	tmpPath := tmpFile.Name()

	// Close가 Remove보다 먼저 실행되어야 한다. (Windows 파일 잠금)
	defer os.Remove(tmpPath)
	defer tmpFile.Close()

	if _, err := tmpFile.Write(data); err != nil {
		return NewErrFileWriteFailed(err)
	}
	if err := tmpFile.Sync(); err != nil {
		return NewErrFileSyncFailed(err)
	}
	if err := tmpFile.Close(); err != nil {
		return NewErrFileCloseFailed(err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return NewErrFileWriteFailed(err)
	}

	if err := renameWithRetry(tmpPath, filename); err != nil {
		return NewErrFileRenameFailed(err)
	}

	// 디렉토리 엔트리 동기화는 실패해도 저장 결과에 영향이 없다.
	if dirFile, err := os.Open(dir); err == nil {
		_ = dirFile.Sync()
		dirFile.Close()
	}

	return nil
}

// renameWithRetry 다른 프로세스(백신, 인덱서 등)가 파일을 잠시 잡고 있는 경우를 위해 이름 변경을 몇 차례 재시도합니다.
func renameWithRetry(oldPath, newPath string) error {
	const maxRetries = 5
	const retryDelay = 10 * time.Millisecond

	var lastErr error
	for range maxRetries {
		if lastErr = os.Rename(oldPath, newPath); lastErr == nil {
			return nil
		}
		time.Sleep(retryDelay)
	}
	return lastErr
}

// cleanupStaleTempFiles 비정상 종료로 남겨진 오래된 임시 파일을 삭제합니다.
func (s *FileStore) cleanupStaleTempFiles() {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"dir":   s.baseDir,
			"error": err,
		}).Warn("임시 파일 정리 중단: 디렉토리 조회 실패")
		return
	}

	threshold := time.Now().Add(-staleTempFileAge)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if matched, _ := filepath.Match(tempFilePattern, entry.Name()); !matched {
			continue
		}

		info, err := entry.Info()
		if err != nil || info.ModTime().After(threshold) {
			continue
		}

		fullPath := filepath.Join(s.baseDir, entry.Name())
		if err := os.Remove(fullPath); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"file":  fullPath,
				"error": err,
			}).Warn("임시 파일 삭제 실패")
			continue
		}

		applog.WithComponentAndFields(component, applog.Fields{
			"file": fullPath,
		}).Info("이전 실행에서 남은 임시 파일 삭제")
	}
}
