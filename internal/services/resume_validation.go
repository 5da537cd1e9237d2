package services

import (
	"fmt"
)

// MaxResumeSize is the upload ceiling in bytes.
const MaxResumeSize int64 = 10 * 1024 * 1024

var allowedResumeTypes = map[string]string{
	MimePDF:  "PDF",
	MimeDOC:  "DOC",
	MimeDOCX: "DOCX",
}

// ValidateResumeFile checks size and MIME type. maxSize <= 0 means MaxResumeSize.
func ValidateResumeFile(size int64, contentType string, maxSize int64) error {
	if maxSize <= 0 {
		maxSize = MaxResumeSize
	}

	if size <= 0 {
		return fmt.Errorf("%w: file is empty", ErrInvalidFile)
	}
	if size > maxSize {
		return fmt.Errorf("%w: file must be %d MB or smaller", ErrInvalidFile, maxSize/(1024*1024))
	}
	if _, ok := allowedResumeTypes[contentType]; !ok {
		return fmt.Errorf("%w: only PDF, DOC and DOCX files are accepted", ErrInvalidFile)
	}

	return nil
}
