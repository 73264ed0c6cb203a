package form

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/evlive/admin-console/internal/api"
)

// FileKind is the media category a form slot accepts.
type FileKind string

const (
	KindImage FileKind = "image"
	KindVideo FileKind = "video"
)

// UploadLimits bounds file sizes before an upload is attempted.
type UploadLimits struct {
	MaxImageBytes int64
	MaxVideoBytes int64
}

var (
	imageExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}
	videoExtensions = map[string]bool{".mp4": true, ".mov": true, ".webm": true, ".mkv": true}
)

// FilePreview is a user-selected file staged for upload. It exists
// only while the form is open: submitting or cancelling the form
// discards it; nothing is written anywhere client-side.
type FilePreview struct {
	Path string
	Kind FileKind
	Size int64
}

// NewFilePreview probes the file at path. The kind comes from the
// extension; unknown extensions produce an error so the form can show
// it inline.
func NewFilePreview(path string) (*FilePreview, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	var kind FileKind
	switch {
	case imageExtensions[ext]:
		kind = KindImage
	case videoExtensions[ext]:
		kind = KindVideo
	default:
		return nil, fmt.Errorf("unsupported file type %q", ext)
	}

	return &FilePreview{Path: path, Kind: kind, Size: info.Size()}, nil
}

// Validate checks the preview against the slot's accepted kind and the
// configured size limit, returning an inline message or empty.
func (p *FilePreview) Validate(want FileKind, limits UploadLimits) string {
	if p.Kind != want {
		return fmt.Sprintf("This field accepts %s files only", want)
	}
	limit := limits.MaxImageBytes
	if want == KindVideo {
		limit = limits.MaxVideoBytes
	}
	if limit > 0 && p.Size > limit {
		return fmt.Sprintf("File exceeds the %dMB limit", limit>>20)
	}
	return ""
}

// Label renders the preview line shown beside the field.
func (p *FilePreview) Label() string {
	return fmt.Sprintf("%s (%s, %.1fMB)", filepath.Base(p.Path), p.Kind, float64(p.Size)/(1<<20))
}

// Upload opens the file as a multipart part for the given field.
func (p *FilePreview) Upload(field string) (api.Upload, error) {
	file, err := os.Open(p.Path)
	if err != nil {
		return api.Upload{}, fmt.Errorf("open %s: %w", p.Path, err)
	}
	return api.Upload{Field: field, Name: filepath.Base(p.Path), Reader: file}, nil
}
