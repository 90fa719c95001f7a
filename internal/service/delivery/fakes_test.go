package delivery

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/delivery"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/master/client"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/master/material"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"
)

type fakeTx struct{ calls int }

func (f *fakeTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeOrderRepo struct {
	orders  map[string]delivery.DeliveryOrder
	seq     int
	lookups int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]delivery.DeliveryOrder{}}
}

func (r *fakeOrderRepo) Create(_ context.Context, o delivery.DeliveryOrder) (delivery.DeliveryOrder, error) {
	for _, existing := range r.orders {
		if existing.OrderNumber == o.OrderNumber {
			return delivery.DeliveryOrder{}, delivery.ErrOrderNumberExists
		}
	}
	r.seq++
	o.ID = fmt.Sprintf("00000000-0000-0000-0000-%012d", r.seq)
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	r.orders[o.ID] = o
	return o, nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (delivery.DeliveryOrder, error) {
	r.lookups++
	o, ok := r.orders[id]
	if !ok {
		return delivery.DeliveryOrder{}, delivery.ErrDeliveryNotFound
	}
	return o, nil
}

func (r *fakeOrderRepo) GetByOrderNumber(_ context.Context, number string) (delivery.DeliveryOrder, error) {
	r.lookups++
	for _, o := range r.orders {
		if o.OrderNumber == number {
			return o, nil
		}
	}
	return delivery.DeliveryOrder{}, delivery.ErrDeliveryNotFound
}

func (r *fakeOrderRepo) GetDetail(ctx context.Context, id string) (delivery.DeliveryOrderDetail, error) {
	o, err := r.GetByID(ctx, id)
	if err != nil {
		return delivery.DeliveryOrderDetail{}, err
	}
	return delivery.DeliveryOrderDetail{DeliveryOrder: o}, nil
}

func (r *fakeOrderRepo) ExistsByOrderNumber(ctx context.Context, number string) (bool, error) {
	_, err := r.GetByOrderNumber(ctx, number)
	return err == nil, nil
}

func (r *fakeOrderRepo) List(_ context.Context, filter delivery.DeliveryFilter) ([]delivery.DeliveryOrder, int64, error) {
	var out []delivery.DeliveryOrder
	for _, o := range r.orders {
		if filter.DriverID != nil && !o.IsAssignedTo(*filter.DriverID) {
			continue
		}
		if filter.Status != nil && string(o.Status) != *filter.Status {
			continue
		}
		if filter.Search != nil && !strings.Contains(strings.ToLower(o.ClientName), strings.ToLower(*filter.Search)) {
			continue
		}
		out = append(out, o)
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) ListByDriver(_ context.Context, driverID string) ([]delivery.DeliveryOrder, error) {
	var out []delivery.DeliveryOrder
	for _, o := range r.orders {
		if o.IsAssignedTo(driverID) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) CountCompletedByDriver(_ context.Context, driverID string, from, to time.Time) (int, error) {
	n := 0
	for _, o := range r.orders {
		if o.IsAssignedTo(driverID) && o.DeliveredWithin(from, to) {
			n++
		}
	}
	return n, nil
}

func (r *fakeOrderRepo) CountByStatus(context.Context) (map[delivery.Status]int64, error) {
	counts := map[delivery.Status]int64{}
	for _, o := range r.orders {
		counts[o.Status]++
	}
	return counts, nil
}

func (r *fakeOrderRepo) Update(_ context.Context, o delivery.DeliveryOrder) error {
	if _, ok := r.orders[o.ID]; !ok {
		return delivery.ErrDeliveryNotFound
	}
	r.orders[o.ID] = o
	return nil
}

type fakeClientRepo struct{ byName map[string]client.Client }

func (r *fakeClientRepo) Create(ctx context.Context, name string) (client.Client, error) {
	if _, ok := r.byName[name]; ok {
		return client.Client{}, client.ErrClientNameExists
	}
	return r.Upsert(ctx, name)
}

func (r *fakeClientRepo) Upsert(_ context.Context, name string) (client.Client, error) {
	if c, ok := r.byName[name]; ok {
		return c, nil
	}
	c := client.Client{ID: "client-" + name, Name: name}
	r.byName[name] = c
	return c, nil
}

func (r *fakeClientRepo) List(context.Context, string) ([]client.Client, error) {
	var out []client.Client
	for _, c := range r.byName {
		out = append(out, c)
	}
	return out, nil
}

type fakeMaterialRepo struct {
	byName  map[string]material.Material
	upserts int
}

func (r *fakeMaterialRepo) Create(ctx context.Context, name string) (material.Material, error) {
	if _, ok := r.byName[name]; ok {
		return material.Material{}, material.ErrMaterialNameExists
	}
	return r.Upsert(ctx, name)
}

func (r *fakeMaterialRepo) Upsert(_ context.Context, name string) (material.Material, error) {
	r.upserts++
	if m, ok := r.byName[name]; ok {
		return m, nil
	}
	m := material.Material{ID: "material-" + name, Name: name}
	r.byName[name] = m
	return m, nil
}

func (r *fakeMaterialRepo) List(context.Context, string) ([]material.Material, error) {
	var out []material.Material
	for _, m := range r.byName {
		out = append(out, m)
	}
	return out, nil
}

type fakeUserRepo struct{ users map[string]user.User }

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByIDs(ctx context.Context, ids []string) ([]user.User, error) {
	var out []user.User
	for _, id := range ids {
		if u, err := r.GetByID(ctx, id); err == nil {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role user.Role) ([]user.User, error) {
	var out []user.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	r.users[u.ID] = u
	return u, nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, u user.User) error {
	r.users[u.ID] = u
	return nil
}

type fakeFiles struct {
	uploaded []string
	deleted  []string
}

func (f *fakeFiles) UploadDeliveryProof(_ context.Context, orderID string, file io.Reader, filename string) (string, error) {
	ref := "proofs/" + orderID + "/" + filename
	f.uploaded = append(f.uploaded, ref)
	return ref, nil
}

func (f *fakeFiles) UploadWeighTicketImage(context.Context, string, time.Time, io.Reader, string) (string, error) {
	return "", nil
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
