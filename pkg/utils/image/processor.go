package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/chai2010/webp"
)

const (
	MaxImageSize = 10 * 1024 * 1024 // 10MB
	sniffLen     = 512
)

var (
	ErrFileRequired = errors.New("no file provided")
	ErrFileSize     = errors.New("file size exceeds limit of 10MB")
	ErrFileType     = errors.New("invalid file type. Allowed types: JPG, PNG, WEBP")
)

// AllowedImageTypes maps a sniffed content type to the extension it is stored under.
var AllowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// Processed is a re-encoded image ready for upload.
type Processed struct {
	Body        *bytes.Buffer
	ContentType string
	Extension   string
}

// Sniff classifies the leading bytes of a file. The client's declared type is never trusted.
func Sniff(head []byte) (string, error) {
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	contentType := http.DetectContentType(head)
	if _, ok := AllowedImageTypes[contentType]; !ok {
		return "", fmt.Errorf("%w (detected %s)", ErrFileType, contentType)
	}
	return contentType, nil
}

func ProcessImage(file *multipart.FileHeader) (*Processed, error) {
	if file == nil {
		return nil, ErrFileRequired
	}
	if file.Size > MaxImageSize {
		return nil, ErrFileSize
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("could not open file: %w", err)
	}
	defer src.Close()

	return Process(src)
}

// Process sniffs, decodes and re-encodes an image read from r.
func Process(r io.Reader) (*Processed, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("could not read file: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrFileRequired
	}
	if len(data) > MaxImageSize {
		return nil, ErrFileSize
	}

	contentType, err := Sniff(data)
	if err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: could not decode image: %v", ErrFileType, err)
	}

	buf := new(bytes.Buffer)
	switch format {
	case "jpeg":
		err = jpeg.Encode(buf, img, &jpeg.Options{Quality: 85})
	case "png":
		err = png.Encode(buf, img)
	case "webp":
		err = webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: 85})
	default:
		return nil, fmt.Errorf("%w: unsupported image format %s", ErrFileType, format)
	}
	if err != nil {
		return nil, fmt.Errorf("could not encode image: %w", err)
	}

	return &Processed{
		Body:        buf,
		ContentType: contentType,
		Extension:   AllowedImageTypes[contentType],
	}, nil
}
