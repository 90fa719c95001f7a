package weigh_ticket

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"testing"
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/weigh_ticket"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memFile struct{ *bytes.Reader }

func (memFile) Close() error { return nil }

type fakeTickets struct {
	byID map[string]weigh_ticket.WeighTicket
}

func (f *fakeTickets) Create(_ context.Context, t weigh_ticket.WeighTicket) (weigh_ticket.WeighTicket, error) {
	for _, existing := range f.byID {
		if existing.TicketNumber == t.TicketNumber {
			return weigh_ticket.WeighTicket{}, weigh_ticket.ErrTicketNumberExists
		}
	}
	t.ID = fmt.Sprintf("00000000-0000-0000-0003-%012d", len(f.byID)+1)
	t.CreatedAt = time.Now()
	f.byID[t.ID] = t
	return t, nil
}

func (f *fakeTickets) GetByID(_ context.Context, id string) (weigh_ticket.WeighTicket, error) {
	t, ok := f.byID[id]
	if !ok {
		return weigh_ticket.WeighTicket{}, weigh_ticket.ErrWeighTicketNotFound
	}
	return t, nil
}

func (f *fakeTickets) List(_ context.Context, filter weigh_ticket.WeighTicketFilter) ([]weigh_ticket.WeighTicket, int64, error) {
	var out []weigh_ticket.WeighTicket
	for _, t := range f.byID {
		if filter.Client == nil || t.Client == *filter.Client {
			out = append(out, t)
		}
	}
	return out, int64(len(out)), nil
}

type fakeFiles struct {
	uploaded []string
	deleted  []string
}

func (f *fakeFiles) UploadDeliveryProof(context.Context, string, io.Reader, string) (string, error) {
	return "", nil
}

func (f *fakeFiles) UploadWeighTicketImage(_ context.Context, ticketNumber string, date time.Time, _ io.Reader, _ string) (string, error) {
	ref := "weigh-tickets/" + date.Format("2006-01-02") + "/" + ticketNumber + ".jpg"
	f.uploaded = append(f.uploaded, ref)
	return ref, nil
}

func (f *fakeFiles) UploadReceipt(context.Context, string, io.Reader, string) (string, error) {
	return "", nil
}

func (f *fakeFiles) DeleteFile(_ context.Context, ref string) error {
	f.deleted = append(f.deleted, ref)
	return nil
}

func (f *fakeFiles) GetFileURL(_ context.Context, ref string) (string, error) {
	return "http://files.test/" + ref, nil
}

var driver = user.Identity{UserID: "d-1", Role: user.RoleDriver}

func validRequest(number string) weigh_ticket.CreateWeighTicketRequest {
	return weigh_ticket.CreateWeighTicketRequest{
		TicketNumber: number,
		TruckNumber:  "B 1234 XY",
		Tonnage:      decimal.RequireFromString("12.5"),
		Date:         "2026-03-10",
		Client:       "PT Maju",
		MaterialType: "Sand",
	}
}

func TestCreate_WithImage(t *testing.T) {
	files := &fakeFiles{}
	svc := NewWeighTicketService(&fakeTickets{byID: map[string]weigh_ticket.WeighTicket{}}, files)

	photo := memFile{bytes.NewReader([]byte("jpeg"))}
	resp, err := svc.Create(context.Background(), driver, validRequest("WT-001"), photo, &multipart.FileHeader{Filename: "slip.jpg"})
	require.NoError(t, err)

	assert.Equal(t, "2026-03-10", resp.Date)
	assert.Equal(t, "d-1", resp.CreatedBy)
	require.NotNil(t, resp.ImageRef)
	assert.Equal(t, "weigh-tickets/2026-03-10/WT-001.jpg", *resp.ImageRef)
	require.NotNil(t, resp.ImageURL)
	assert.Equal(t, "http://files.test/weigh-tickets/2026-03-10/WT-001.jpg", *resp.ImageURL)
}

func TestCreate_WithoutImage(t *testing.T) {
	svc := NewWeighTicketService(&fakeTickets{byID: map[string]weigh_ticket.WeighTicket{}}, &fakeFiles{})

	resp, err := svc.Create(context.Background(), driver, validRequest("WT-002"), nil, nil)
	require.NoError(t, err)
	assert.Nil(t, resp.ImageRef)
	assert.Nil(t, resp.ImageURL)
}

func TestCreate_DuplicateRemovesUploadedImage(t *testing.T) {
	files := &fakeFiles{}
	svc := NewWeighTicketService(&fakeTickets{byID: map[string]weigh_ticket.WeighTicket{}}, files)
	ctx := context.Background()

	_, err := svc.Create(ctx, driver, validRequest("WT-003"), nil, nil)
	require.NoError(t, err)

	photo := memFile{bytes.NewReader([]byte("jpeg"))}
	_, err = svc.Create(ctx, driver, validRequest("WT-003"), photo, &multipart.FileHeader{Filename: "slip.jpg"})
	assert.ErrorIs(t, err, weigh_ticket.ErrTicketNumberExists)
	assert.Equal(t, files.uploaded, files.deleted)
}

func TestCreate_Guards(t *testing.T) {
	svc := NewWeighTicketService(&fakeTickets{byID: map[string]weigh_ticket.WeighTicket{}}, &fakeFiles{})
	ctx := context.Background()

	_, err := svc.Create(ctx, user.Identity{UserID: "hr-1", Role: user.RoleHR}, validRequest("WT-004"), nil, nil)
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	req := validRequest("")
	req.Tonnage = decimal.Zero
	req.Date = "10/03/2026"
	_, err = svc.Create(ctx, driver, req, nil, nil)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "ticket_number")
	assert.Contains(t, fields, "tonnage")
	assert.Contains(t, fields, "date")
}

func TestListAndGet(t *testing.T) {
	svc := NewWeighTicketService(&fakeTickets{byID: map[string]weigh_ticket.WeighTicket{}}, &fakeFiles{})
	ctx := context.Background()

	created, err := svc.Create(ctx, driver, validRequest("WT-005"), nil, nil)
	require.NoError(t, err)
	other := validRequest("WT-006")
	other.Client = "CV Sejahtera"
	_, err = svc.Create(ctx, driver, other, nil, nil)
	require.NoError(t, err)

	client := "PT Maju"
	list, err := svc.List(ctx, user.Identity{UserID: "hr-1", Role: user.RoleHR}, weigh_ticket.WeighTicketFilter{Client: &client})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.TotalCount)
	assert.Equal(t, 1, list.TotalPages)

	got, err := svc.Get(ctx, driver, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "WT-005", got.TicketNumber)

	_, err = svc.Get(ctx, driver, "missing")
	assert.ErrorIs(t, err, weigh_ticket.ErrWeighTicketNotFound)

	_, err = svc.List(ctx, user.Identity{UserID: "m-1", Role: user.RoleMember}, weigh_ticket.WeighTicketFilter{})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
}
