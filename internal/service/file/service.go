package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoding
	"io"
	"math"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

var ErrInvalidFileType = errors.New("invalid file type: only jpg, jpeg, png allowed")

var imageExts = []string{".jpg", ".jpeg", ".png"}

const (
	photoMaxSize = 300 * 1024
	photoMinSize = 50 * 1024
	urlExpiry    = time.Hour
)

type FileService interface {
	// UploadDeliveryProof stores a compressed proof photo for an order.
	UploadDeliveryProof(ctx context.Context, orderID string, file io.Reader, filename string) (string, error)

	// UploadWeighTicketImage stores a compressed photo of a weighbridge slip.
	UploadWeighTicketImage(ctx context.Context, ticketNumber string, date time.Time, file io.Reader, filename string) (string, error)

	// UploadReceipt stores an expense receipt as-is.
	UploadReceipt(ctx context.Context, userID string, file io.Reader, filename string) (string, error)

	DeleteFile(ctx context.Context, ref string) error
	GetFileURL(ctx context.Context, ref string) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
	now     func() time.Time
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
		now:     time.Now,
	}
}

func imageExt(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !slices.Contains(imageExts, ext) {
		return "", ErrInvalidFileType
	}
	return ext, nil
}

func (s *fileServiceImpl) uploadPhoto(ctx context.Context, file io.Reader, filename, dest string) (string, error) {
	if _, err := imageExt(filename); err != nil {
		return "", err
	}

	buffer, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	compressed, err := compressImage(buffer, photoMaxSize, photoMinSize)
	if err != nil {
		return "", fmt.Errorf("failed to compress image: %w", err)
	}

	// Compressed photos are always stored as JPEG
	return s.storage.Upload(ctx, bytes.NewReader(compressed), dest, "image/jpeg")
}

func (s *fileServiceImpl) UploadDeliveryProof(ctx context.Context, orderID string, file io.Reader, filename string) (string, error) {
	dest := path.Join("proofs", orderID, fmt.Sprintf("%s-%d.jpg", uuid.New().String(), s.now().Unix()))

	ref, err := s.uploadPhoto(ctx, file, filename, dest)
	if err != nil {
		return "", fmt.Errorf("failed to upload delivery proof: %w", err)
	}
	return ref, nil
}

func (s *fileServiceImpl) UploadWeighTicketImage(ctx context.Context, ticketNumber string, date time.Time, file io.Reader, filename string) (string, error) {
	safe := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == '.' {
			return '_'
		}
		return r
	}, ticketNumber)
	dest := path.Join("weigh-tickets", date.Format("2006-01-02"), fmt.Sprintf("%s-%s.jpg", safe, uuid.New().String()))

	ref, err := s.uploadPhoto(ctx, file, filename, dest)
	if err != nil {
		return "", fmt.Errorf("failed to upload weigh ticket image: %w", err)
	}
	return ref, nil
}

func (s *fileServiceImpl) UploadReceipt(ctx context.Context, userID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	contentType := "application/octet-stream"
	switch ext {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".pdf":
		contentType = "application/pdf"
	}

	dest := path.Join("receipts", userID, uuid.New().String()+ext)
	ref, err := s.storage.Upload(ctx, file, dest, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload receipt: %w", err)
	}
	return ref, nil
}

func (s *fileServiceImpl) DeleteFile(ctx context.Context, ref string) error {
	return s.storage.Delete(ctx, ref)
}

func (s *fileServiceImpl) GetFileURL(ctx context.Context, ref string) (string, error) {
	return s.storage.GetURL(ctx, ref, urlExpiry)
}

// compressImage re-encodes an image as JPEG, lowering quality and then
// resolution until it fits under maxSize. Images already inside
// [minSize, maxSize] are returned untouched.
func compressImage(buffer []byte, maxSize int, minSize int) ([]byte, error) {
	if len(buffer) <= maxSize && len(buffer) >= minSize {
		return buffer, nil
	}

	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	var compressed []byte
	for quality := 85; quality >= 50; quality -= 5 {
		compressed, err = encodeJPEG(img, quality)
		if err != nil {
			return nil, err
		}
		if len(compressed) <= maxSize {
			return compressed, nil
		}
	}

	// Still too large: scale down towards the middle of the range
	bounds := img.Bounds()
	ratio := math.Sqrt(float64((maxSize+minSize)/2) / float64(len(compressed)))
	width := max(int(float64(bounds.Dx())*ratio), 600)
	height := max(int(float64(bounds.Dy())*ratio), 400)

	return encodeJPEG(resizeImage(img, width, height), 70)
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
