package export

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
)

// Sink is where a finished document ends up.
type Sink interface {
	Write(ctx context.Context, filename string, doc []byte) error
}

// DownloadSink offers the document as a file download on an HTTP response.
type DownloadSink struct {
	W http.ResponseWriter
}

func (s DownloadSink) Write(_ context.Context, filename string, doc []byte) error {
	h := s.W.Header()
	h.Set("Content-Type", "application/pdf")
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	h.Set("Content-Length", strconv.Itoa(len(doc)))
	s.W.WriteHeader(http.StatusOK)
	_, err := s.W.Write(doc)
	return err
}

// FileSink stores documents in a directory. Before each write it asks for
// access to the directory; a refusal is logged and the write is attempted
// anyway.
type FileSink struct {
	Dir               string
	RequestPermission func(ctx context.Context, dir string) error
}

func NewFileSink(dir string) *FileSink {
	return &FileSink{Dir: dir, RequestPermission: EnsureWritable}
}

func (s *FileSink) Write(ctx context.Context, filename string, doc []byte) error {
	if s.RequestPermission != nil {
		if err := s.RequestPermission(ctx, s.Dir); err != nil {
			log.Printf("quote export: permission for dir=%s not granted, writing anyway: %v", s.Dir, err)
		}
	}
	return os.WriteFile(s.Path(filename), doc, 0o644)
}

// Path is where filename is stored. Directory parts of filename are dropped.
func (s *FileSink) Path(filename string) string {
	return filepath.Join(s.Dir, filepath.Base(filename))
}

// EnsureWritable creates dir if needed and probes that files can be created in it.
func EnsureWritable(_ context.Context, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}

// Tee writes to Primary and then copies to Archive. Archive failures are
// logged only; the primary write decides the outcome.
type Tee struct {
	Primary Sink
	Archive Sink
}

func (t Tee) Write(ctx context.Context, filename string, doc []byte) error {
	if err := t.Primary.Write(ctx, filename, doc); err != nil {
		return err
	}
	if t.Archive != nil {
		if err := t.Archive.Write(ctx, filename, doc); err != nil {
			log.Printf("quote export: archive file=%s failed: %v", filename, err)
		}
	}
	return nil
}
