// Package uploads stores multipart file uploads and hands back the public
// URL the front end embeds in page documents.
//
// Files live under the configured storage backend at <folder>/<name> and are
// served at /uploads/<folder>/<name>. Names carry a millisecond timestamp and
// a short uuid so two uploads of the same file never collide.
package uploads

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// URLPrefix is where stored files are mounted on the HTTP router.
const URLPrefix = "/uploads"

var unsafeChars = regexp.MustCompile(`[^\w.\-]+`)

// Store saves uploaded files into a storage backend.
type Store struct {
	backend storage.Store
	logger  *zap.Logger
}

// New returns a Store writing through the given backend.
func New(backend storage.Store, logger *zap.Logger) *Store {
	return &Store{backend: backend, logger: logger}
}

// SanitizeName collapses whitespace and strips characters that are unsafe in
// a URL path segment, keeping the extension.
func SanitizeName(name string) string {
	name = path.Base(name)
	name = strings.TrimSpace(name)
	name = unsafeChars.ReplaceAllString(name, "_")
	if name == "" || name == "." {
		name = "file"
	}
	return name
}

// Save writes one uploaded file into folder and returns its public URL
// (/uploads/<folder>/<name>). The write is awaited; on failure the error is
// returned and nothing is recorded.
func (s *Store) Save(ctx context.Context, fh *multipart.FileHeader, folder string) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload %q: %w", fh.Filename, err)
	}
	defer f.Close()

	name := fmt.Sprintf("%d-%s-%s",
		time.Now().UnixMilli(),
		uuid.New().String()[:8],
		SanitizeName(fh.Filename),
	)
	storagePath := path.Join(folder, name)

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	opts := &storage.PutOptions{ContentType: contentType}
	if err := s.backend.Put(ctx, storagePath, f, opts); err != nil {
		s.logger.Error("file upload failed",
			zap.String("path", storagePath),
			zap.Error(err),
		)
		return "", fmt.Errorf("store upload %q: %w", fh.Filename, err)
	}

	return URLPrefix + "/" + storagePath, nil
}

// Delete removes a previously stored file given its public URL. Unknown or
// foreign URLs are ignored.
func (s *Store) Delete(ctx context.Context, url string) error {
	rel, ok := strings.CutPrefix(url, URLPrefix+"/")
	if !ok || rel == "" {
		return nil
	}
	return s.backend.Delete(ctx, rel)
}
