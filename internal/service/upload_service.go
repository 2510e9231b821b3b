package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gestor-next/internal/config"

	"github.com/google/uuid"
)

// UploadDescriptor binds one uploadable entity column to storage. The
// registry is the only mapping from request table names to columns; no
// SQL is ever built from request strings.
type UploadDescriptor struct {
	Table  string
	Field  string
	Folder string
	// Attach stores the filename on the record (audited by the owning
	// service).
	Attach func(actorID, recordID uint, filename string) error
	// Lookup returns the stored filename for the record.
	Lookup func(recordID uint) (string, error)
}

// UploadService validates and stores uploaded files, routed through an
// explicit descriptor registry.
type UploadService struct {
	cfg         *config.Config
	descriptors map[string]UploadDescriptor
}

// NewUploadService creates an upload service.
func NewUploadService(cfg *config.Config) *UploadService {
	return &UploadService{
		cfg:         cfg,
		descriptors: make(map[string]UploadDescriptor),
	}
}

// Register adds a descriptor. Later registrations for the same key win.
func (s *UploadService) Register(d UploadDescriptor) {
	s.descriptors[descriptorKey(d.Table, d.Field)] = d
}

// Descriptor resolves a (tabla, campo) pair. Empty campo matches the only
// descriptor registered for the table.
func (s *UploadService) Descriptor(table, field string) (UploadDescriptor, bool) {
	if field != "" {
		d, ok := s.descriptors[descriptorKey(table, field)]
		return d, ok
	}
	var found UploadDescriptor
	matches := 0
	for _, d := range s.descriptors {
		if d.Table == table {
			found = d
			matches++
		}
	}
	if matches == 1 {
		return found, true
	}
	return UploadDescriptor{}, false
}

// Upload validates the file, stores it and attaches it to the record.
func (s *UploadService) Upload(actorID, recordID uint, table, field string, file *multipart.FileHeader) (string, error) {
	descriptor, ok := s.Descriptor(table, field)
	if !ok {
		return "", ErrInvalidInput
	}

	filename, err := s.saveFile(file, descriptor.Folder)
	if err != nil {
		return "", err
	}
	if err := descriptor.Attach(actorID, recordID, filename); err != nil {
		// the record rejected the file; drop the orphan from disk
		_ = os.Remove(filepath.Join(s.uploadDir(), descriptor.Folder, filename))
		return "", err
	}
	return filename, nil
}

// FilePath resolves the on-disk path of a stored file for serving.
func (s *UploadService) FilePath(table string, recordID uint, field string) (string, error) {
	descriptor, ok := s.Descriptor(table, field)
	if !ok {
		return "", ErrInvalidInput
	}
	filename, err := descriptor.Lookup(recordID)
	if err != nil {
		return "", err
	}
	if filename == "" {
		return "", ErrNotFound
	}
	path := filepath.Join(s.uploadDir(), descriptor.Folder, filename)
	if _, err := os.Stat(path); err != nil {
		return "", ErrNotFound
	}
	return path, nil
}

// saveFile checks size, extension and sniffed MIME type, then writes the
// file under a uuid name.
func (s *UploadService) saveFile(file *multipart.FileHeader, folder string) (string, error) {
	if file == nil {
		return "", ErrInvalidInput
	}
	if s.cfg.Upload.MaxSize > 0 && file.Size > s.cfg.Upload.MaxSize {
		return "", fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidInput, s.cfg.Upload.MaxSize)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(s.cfg.Upload.AllowedExtensions) > 0 {
		if ext == "" || !isAllowedExtension(ext, s.cfg.Upload.AllowedExtensions) {
			return "", fmt.Errorf("%w: extension %s not allowed", ErrInvalidInput, ext)
		}
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	buffer := make([]byte, 512)
	if _, err := src.Read(buffer); err != nil && err != io.EOF {
		return "", err
	}
	if _, err := src.Seek(0, 0); err != nil {
		return "", err
	}

	contentType := http.DetectContentType(buffer)
	if len(s.cfg.Upload.AllowedTypes) > 0 {
		allowed := false
		for _, t := range s.cfg.Upload.AllowedTypes {
			if strings.EqualFold(contentType, t) {
				allowed = true
				break
			}
		}
		if !allowed {
			return "", fmt.Errorf("%w: content type %s not allowed", ErrInvalidInput, contentType)
		}
	}

	filename := uuid.New().String() + ext
	savePath := filepath.Join(s.uploadDir(), folder, filename)
	if err := os.MkdirAll(filepath.Dir(savePath), 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(savePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return filename, nil
}

func (s *UploadService) uploadDir() string {
	dir := strings.TrimSpace(s.cfg.Upload.Dir)
	if dir == "" {
		dir = "./uploads"
	}
	return dir
}

func descriptorKey(table, field string) string {
	return table + "." + field
}

func isAllowedExtension(ext string, allowed []string) bool {
	for _, allowedExt := range allowed {
		normalized := strings.ToLower(strings.TrimSpace(allowedExt))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if strings.EqualFold(ext, normalized) {
			return true
		}
	}
	return false
}
