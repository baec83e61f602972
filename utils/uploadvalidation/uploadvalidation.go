package uploadvalidation

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// UploadLimits defines the validation limits for a class of uploads
type UploadLimits struct {
	MaxFileSizeMB     int      // Maximum file size in MB
	AllowedExtensions []string // Lowercase extensions including the dot
	FileTypeName      string   // For error messages (e.g., "resume", "image")
}

var (
	ResumeLimits = UploadLimits{
		MaxFileSizeMB:     5,
		AllowedExtensions: []string{".pdf", ".doc", ".docx"},
		FileTypeName:      "resume",
	}

	ImageLimits = UploadLimits{
		MaxFileSizeMB:     10,
		AllowedExtensions: []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg", ".ico"},
		FileTypeName:      "image",
	}

	VideoLimits = UploadLimits{
		MaxFileSizeMB:     100,
		AllowedExtensions: []string{".mp4", ".webm", ".mov"},
		FileTypeName:      "video",
	}

	AttachmentLimits = UploadLimits{
		MaxFileSizeMB:     20,
		AllowedExtensions: []string{".pdf", ".doc", ".docx", ".jpg", ".jpeg", ".png"},
		FileTypeName:      "attachment",
	}
)

// ValidationResult contains the result of upload validation
type ValidationResult struct {
	Valid    bool
	FileSize int64
	Error    string
}

// ValidateUpload checks a multipart upload against the given limits.
// A non-nil result with Valid=false carries the rejection reason; the
// error return is reserved for I/O failures.
func ValidateUpload(file *multipart.FileHeader, limits UploadLimits) *ValidationResult {
	result := &ValidationResult{FileSize: file.Size}

	maxSize := int64(limits.MaxFileSizeMB) * 1024 * 1024
	if file.Size > maxSize {
		result.Error = fmt.Sprintf("File size exceeds maximum allowed size of %dMB", limits.MaxFileSizeMB)
		return result
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed := false
	for _, a := range limits.AllowedExtensions {
		if ext == a {
			allowed = true
			break
		}
	}
	if !allowed {
		result.Error = fmt.Sprintf("Unsupported %s format %q; allowed: %s",
			limits.FileTypeName, ext, strings.Join(limits.AllowedExtensions, ", "))
		return result
	}

	result.Valid = true
	return result
}

// ValidateResume runs the shared upload checks and, for PDFs, a
// best-effort structural check. A PDF that fails to parse is still
// accepted since some generators emit files the parser rejects but
// viewers render fine; the check exists to count pages when it can.
func ValidateResume(file *multipart.FileHeader, content []byte) *ValidationResult {
	result := ValidateUpload(file, ResumeLimits)
	if !result.Valid {
		return result
	}

	if strings.ToLower(filepath.Ext(file.Filename)) == ".pdf" {
		if !bytes.HasPrefix(content, []byte("%PDF-")) {
			result.Valid = false
			result.Error = "Invalid PDF file: missing PDF header"
			return result
		}
		// Page readability is advisory only.
		_, _ = pdfPageCount(content)
	}

	return result
}

func pdfPageCount(content []byte) (int, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return 0, err
	}
	return reader.NumPage(), nil
}
