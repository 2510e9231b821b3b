package service

import (
	"testing"

	"github.com/gestor-next/internal/config"
)

func newUploadFixture(t *testing.T) *UploadService {
	t.Helper()
	cfg := &config.Config{Upload: config.UploadConfig{
		Dir:               t.TempDir(),
		MaxSize:           1024,
		AllowedTypes:      []string{"image/png"},
		AllowedExtensions: []string{".png"},
	}}
	return NewUploadService(cfg)
}

func TestUploadDescriptorResolution(t *testing.T) {
	svc := newUploadFixture(t)
	svc.Register(UploadDescriptor{Table: "usuarios", Field: "foto", Folder: "usuarios"})
	svc.Register(UploadDescriptor{Table: "cotizaciones", Field: "evidencia", Folder: "cotizaciones"})
	svc.Register(UploadDescriptor{Table: "cotizaciones", Field: "anexo", Folder: "cotizaciones"})

	if _, ok := svc.Descriptor("usuarios", "foto"); !ok {
		t.Fatalf("exact match must resolve")
	}
	if d, ok := svc.Descriptor("usuarios", ""); !ok || d.Field != "foto" {
		t.Fatalf("empty field must match the sole descriptor, got %+v ok=%v", d, ok)
	}
	if _, ok := svc.Descriptor("cotizaciones", ""); ok {
		t.Fatalf("ambiguous empty field must not resolve")
	}
	if _, ok := svc.Descriptor("pedidos", "foto"); ok {
		t.Fatalf("unknown table must not resolve")
	}
}

func TestUploadRejectsUnknownDescriptor(t *testing.T) {
	svc := newUploadFixture(t)
	if _, err := svc.Upload(1, 1, "pedidos", "foto", nil); err == nil {
		t.Fatalf("unknown descriptor must be rejected")
	}
}

func TestIsAllowedExtensionNormalizesDot(t *testing.T) {
	allowed := []string{"png", ".JPG", " .pdf "}
	cases := []struct {
		ext  string
		want bool
	}{
		{".png", true},
		{".jpg", true},
		{".pdf", true},
		{".exe", false},
	}
	for _, tc := range cases {
		if got := isAllowedExtension(tc.ext, allowed); got != tc.want {
			t.Fatalf("ext %s want %v got %v", tc.ext, tc.want, got)
		}
	}
}
