// Package export turns a rendered preview into a document and hands it to a
// sink. The paged path needs a capture capability and a paged writer; when
// either is missing or fails, the preview is printed as a flowing document
// instead so an export request always produces something.
package export

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"golang.org/x/sync/singleflight"

	"cotizador/go_backend/internal/domain/quote"
	"cotizador/go_backend/internal/domain/quote/pdf"
)

var (
	ErrUnavailable = errors.New("export: capability unavailable")
	ErrNoFallback  = errors.New("export: no print fallback configured")
	ErrWriteFailed = errors.New("export: write failed")
)

// Capturer produces the visual surface of a preview.
type Capturer interface {
	Capture(p quote.Preview) (pdf.Image, error)
}

type Mode string

const (
	ModePaged Mode = "paged"
	ModePrint Mode = "print"
)

// Result is one produced document. Document is shared between callers that
// joined the same in-flight export and must not be modified.
type Result struct {
	Filename string
	Mode     Mode
	Pages    int
	Document []byte
}

type Exporter struct {
	Capture Capturer
	Writer  pdf.PagedWriter
	Print   pdf.Generator
	Paper   pdf.PaperSize

	group singleflight.Group
}

// Export builds the document for p. Concurrent calls for the same preview
// and filename share a single execution and the same Result, whose Document
// must not be modified. The shared work is detached from any one caller: a
// caller whose ctx ends gets ctx.Err() while the others still receive the
// document.
func (e *Exporter) Export(ctx context.Context, p quote.Preview, filename string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	key, err := exportKey(p, filename)
	if err != nil {
		return Result{}, err
	}
	ch := e.group.DoChan(key, func() (interface{}, error) {
		return e.export(p, filename)
	})
	select {
	case <-ctx.Done():
		log.Printf("quote export: file=%s caller left: %v", filename, ctx.Err())
		return Result{}, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return Result{}, r.Err
		}
		if r.Shared {
			log.Printf("quote export: file=%s shared in-flight export", filename)
		}
		return r.Val.(Result), nil
	}
}

func (e *Exporter) export(p quote.Preview, filename string) (Result, error) {
	res, err := e.paged(p, filename)
	if err == nil {
		log.Printf("quote export: file=%s mode=%s pages=%d bytes=%d", filename, res.Mode, res.Pages, len(res.Document))
		return res, nil
	}
	if errors.Is(err, pdf.ErrInvalidGeometry) {
		return Result{}, err
	}
	log.Printf("quote export: file=%s paged export failed, printing instead: %v", filename, err)
	return e.print(p, filename)
}

func (e *Exporter) paged(p quote.Preview, filename string) (Result, error) {
	if e.Capture == nil || e.Writer == nil {
		return Result{}, ErrUnavailable
	}
	img, err := e.Capture.Capture(p)
	if err != nil {
		return Result{}, fmt.Errorf("capture: %w", err)
	}
	pages, err := pdf.Paginate(float64(img.Width), float64(img.Height), e.Paper.Width, e.Paper.Height)
	if err != nil {
		return Result{}, err
	}
	doc, err := e.Writer.WritePages(img, pages, e.Paper)
	if err != nil {
		return Result{}, fmt.Errorf("write pages: %w", err)
	}
	return Result{Filename: filename, Mode: ModePaged, Pages: len(pages), Document: doc}, nil
}

func (e *Exporter) print(p quote.Preview, filename string) (Result, error) {
	if e.Print == nil {
		return Result{}, ErrNoFallback
	}
	doc, err := e.Print.Generate(p)
	if err != nil {
		return Result{}, fmt.Errorf("print: %w", err)
	}
	log.Printf("quote export: file=%s mode=%s bytes=%d", filename, ModePrint, len(doc))
	return Result{Filename: filename, Mode: ModePrint, Document: doc}, nil
}

// Deliver writes res to sink. Write failures are returned wrapped in
// ErrWriteFailed rather than dropped.
func Deliver(ctx context.Context, sink Sink, res Result) error {
	if err := sink.Write(ctx, res.Filename, res.Document); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteFailed, res.Filename, err)
	}
	return nil
}

func exportKey(p quote.Preview, filename string) (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	h.Write([]byte(filename))
	h.Write([]byte{0})
	h.Write(b)
	return hex.EncodeToString(h.Sum(nil)), nil
}
