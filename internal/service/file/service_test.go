package file

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngFixture(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), uint8(x + y), 255})
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func newTestService(t *testing.T) (*fileServiceImpl, *storage.LocalStorage) {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir(), "http://files.test/uploads")
	require.NoError(t, err)
	svc := NewFileService(store).(*fileServiceImpl)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
	return svc, store
}

func TestUploadDeliveryProof_StoresJPEG(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	ref, err := svc.UploadDeliveryProof(ctx, "order-1", bytes.NewReader(pngFixture(t, 64, 64)), "proof.PNG")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "proofs/order-1/"))
	assert.True(t, strings.HasSuffix(ref, ".jpg"))

	rc, err := store.Download(ctx, ref)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)

	_, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)

	url, err := svc.GetFileURL(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, "http://files.test/uploads/"+ref, url)
}

func TestUploadDeliveryProof_RejectsNonImage(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.UploadDeliveryProof(context.Background(), "order-1", strings.NewReader("%PDF"), "proof.pdf")
	assert.ErrorIs(t, err, ErrInvalidFileType)
}

func TestUploadWeighTicketImage_SanitizesTicketNumber(t *testing.T) {
	svc, _ := newTestService(t)
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	ref, err := svc.UploadWeighTicketImage(context.Background(), "WB/../01", date, bytes.NewReader(pngFixture(t, 32, 32)), "slip.png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "weigh-tickets/2026-03-02/WB____01-"))
}

func TestUploadReceipt_KeepsOriginalBytes(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	ref, err := svc.UploadReceipt(ctx, "user-1", strings.NewReader("receipt body"), "fuel.pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "receipts/user-1/"))
	assert.True(t, strings.HasSuffix(ref, ".pdf"))

	rc, err := store.Download(ctx, ref)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "receipt body", string(data))

	require.NoError(t, svc.DeleteFile(ctx, ref))
	exists, err := store.Exists(ctx, ref)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCompressImage_WithinRangeUntouched(t *testing.T) {
	buf := bytes.Repeat([]byte{1}, 100)
	out, err := compressImage(buf, 200, 50)
	require.NoError(t, err)
	assert.Equal(t, buf, out)
}
