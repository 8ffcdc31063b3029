package common

import (
	"fmt"
	"os"
	"path/filepath"

	"internhunt/internal/errors"
	"internhunt/internal/types"
	"internhunt/internal/utils"
)

// FileProcessor handles common file operations
type FileProcessor struct {
	logger *errors.Logger
}

// NewFileProcessor creates a new file processor instance
func NewFileProcessor(logger *errors.Logger) *FileProcessor {
	return &FileProcessor{logger: logger}
}

// ReadDocument reads a resume file into a RawDocument, detecting the format
// from the extension and enforcing the size limit. maxSize <= 0 disables the
// limit.
func (fp *FileProcessor) ReadDocument(filename string, maxSize int64) (types.RawDocument, error) {
	if err := utils.ValidateInputFile(filename); err != nil {
		return types.RawDocument{}, errors.NewValidationError("INVALID_INPUT_FILE",
			fmt.Sprintf("Invalid file %s", filename), err)
	}

	format, ok := utils.DetectDocumentFormat(filename)
	if !ok {
		return types.RawDocument{}, errors.NewDocumentError(errors.ErrCodeUnsupportedFormat,
			fmt.Sprintf("Unsupported file type %s (expected .pdf or .docx)", filename), nil)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return types.RawDocument{}, errors.NewIOError(errors.ErrCodeFileNotFound,
				fmt.Sprintf("File not found: %s", filename), err)
		}
		return types.RawDocument{}, errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Cannot read file: %s", filename), err)
	}

	if maxSize > 0 && int64(len(data)) > maxSize {
		return types.RawDocument{}, errors.NewValidationError(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("File %s exceeds the %s limit", filename, utils.FormatFileSize(maxSize)), nil).
			WithContext("size", utils.FormatFileSize(int64(len(data))))
	}

	return types.RawDocument{
		Data:     data,
		Format:   format,
		Filename: filepath.Base(filename),
	}, nil
}

// WriteFile writes content to a file with directory creation
func (fp *FileProcessor) WriteFile(filename, content string) error {
	dir := filepath.Dir(filename)
	if dir != "." {
		err := os.MkdirAll(dir, 0750)
		if err != nil {
			return errors.NewIOError("DIRECTORY_CREATE_FAILED",
				fmt.Sprintf("Cannot create directory: %s", dir), err)
		}
	}

	err := os.WriteFile(filename, []byte(content), 0600)
	if err != nil {
		return errors.NewIOError("FILE_WRITE_FAILED",
			fmt.Sprintf("Cannot write file: %s", filename), err)
	}

	return nil
}

// ValidateOutputFile validates output file path
func (fp *FileProcessor) ValidateOutputFile(filename string) error {
	if filename == "" {
		return nil // stdout is valid
	}

	if err := utils.ValidateOutputFile(filename); err != nil {
		return errors.NewValidationError("INVALID_OUTPUT_FILE",
			fmt.Sprintf("Invalid output file: %s", filename), err)
	}

	return nil
}
