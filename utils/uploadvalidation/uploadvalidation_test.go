package uploadvalidation

import (
	"mime/multipart"
	"strings"
	"testing"
)

func header(name string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: size}
}

func TestValidateUploadRejectsOversize(t *testing.T) {
	result := ValidateUpload(header("resume.pdf", 6*1024*1024), ResumeLimits)
	if result.Valid {
		t.Fatal("6MB resume should be rejected")
	}
	if !strings.Contains(result.Error, "5MB") {
		t.Errorf("error should name the limit, got %q", result.Error)
	}
}

func TestValidateUploadRejectsExtension(t *testing.T) {
	cases := []struct {
		name   string
		limits UploadLimits
	}{
		{"resume.exe", ResumeLimits},
		{"resume.pdf.sh", ResumeLimits},
		{"photo.bmp", ImageLimits},
		{"clip.avi", VideoLimits},
		{"noextension", AttachmentLimits},
	}
	for _, tc := range cases {
		if result := ValidateUpload(header(tc.name, 1024), tc.limits); result.Valid {
			t.Errorf("%q should be rejected", tc.name)
		}
	}
}

func TestValidateUploadAccepts(t *testing.T) {
	cases := []struct {
		name   string
		limits UploadLimits
	}{
		{"resume.pdf", ResumeLimits},
		{"Resume.DOCX", ResumeLimits},
		{"photo.webp", ImageLimits},
		{"hero.mp4", VideoLimits},
		{"scan.jpg", AttachmentLimits},
	}
	for _, tc := range cases {
		if result := ValidateUpload(header(tc.name, 1024*1024), tc.limits); !result.Valid {
			t.Errorf("%q should be accepted: %s", tc.name, result.Error)
		}
	}
}

func TestValidateResumePDFHeader(t *testing.T) {
	content := []byte("%PDF-1.4\nnot a real body but the header is what matters")
	if result := ValidateResume(header("cv.pdf", int64(len(content))), content); !result.Valid {
		t.Errorf("PDF with valid header should pass even when unparseable: %s", result.Error)
	}

	junk := []byte("MZ this is not a pdf at all")
	if result := ValidateResume(header("cv.pdf", int64(len(junk))), junk); result.Valid {
		t.Error("file without a PDF header should be rejected")
	}
}

func TestValidateResumeNonPDFSkipsHeaderCheck(t *testing.T) {
	content := []byte("plain word document bytes")
	if result := ValidateResume(header("cv.docx", int64(len(content))), content); !result.Valid {
		t.Errorf("docx resume should not be header-checked: %s", result.Error)
	}
}
