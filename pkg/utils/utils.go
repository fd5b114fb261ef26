package utils

import (
	"crypto/rand"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	ErrNoFile            = errors.New("no file uploaded")
	ErrFileTooLarge      = errors.New("file size exceeds limit")
	ErrNotAnImage        = errors.New("uploaded file is not an image")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

var allowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	ValidateImageFile(file *multipart.FileHeader) error
	ReadImageFile(file *multipart.FileHeader) ([]byte, string, error)
	DetectImageType(data []byte) (string, error)
	MaxFileSize() int64
}

type utils struct {
	maxFileSize int64
}

func New() IUtils {
	return &utils{
		maxFileSize: 10 * 1024 * 1024,
	}
}

func (u *utils) MaxFileSize() int64 {
	return u.maxFileSize
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

func (u *utils) ValidateImageFile(file *multipart.FileHeader) error {
	if file == nil {
		return ErrNoFile
	}

	if file.Size > u.maxFileSize {
		return ErrFileTooLarge
	}

	contentType := file.Header.Get("Content-Type")
	if contentType != "" && contentType != "application/octet-stream" && !strings.HasPrefix(contentType, "image/") {
		return ErrNotAnImage
	}

	return nil
}

// ReadImageFile validates and reads an uploaded photo, returning its bytes and
// sniffed content type.
func (u *utils) ReadImageFile(file *multipart.FileHeader) ([]byte, string, error) {
	if err := u.ValidateImageFile(file); err != nil {
		return nil, "", err
	}

	f, err := file.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, u.maxFileSize+1))
	if err != nil {
		return nil, "", err
	}
	if int64(len(data)) > u.maxFileSize {
		return nil, "", ErrFileTooLarge
	}

	contentType, err := u.DetectImageType(data)
	if err != nil {
		return nil, "", err
	}

	return data, contentType, nil
}

func (u *utils) DetectImageType(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrNoFile
	}

	contentType := http.DetectContentType(data)
	if _, ok := allowedImageTypes[contentType]; !ok {
		if strings.HasPrefix(contentType, "image/") {
			return "", ErrUnsupportedFormat
		}
		return "", ErrNotAnImage
	}

	return contentType, nil
}

// ImageExtension returns the file extension for an accepted image content type.
func ImageExtension(contentType string) string {
	if ext, ok := allowedImageTypes[contentType]; ok {
		return ext
	}
	return "bin"
}
