package ground

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	nextID  int
	grounds map[string]*Ground
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{grounds: make(map[string]*Ground)}
}

func (r *memoryRepo) Create(ctx context.Context, g *Ground) error {
	r.nextID++
	g.ID = fmt.Sprintf("ground-%d", r.nextID)
	cp := *g
	r.grounds[g.ID] = &cp
	return nil
}

func (r *memoryRepo) GetByID(ctx context.Context, id string) (*Ground, error) {
	g, ok := r.grounds[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (r *memoryRepo) List(ctx context.Context, activeOnly bool) ([]*Ground, error) {
	var out []*Ground
	for _, g := range r.grounds {
		if activeOnly && !g.IsActive {
			continue
		}
		cp := *g
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memoryRepo) Update(ctx context.Context, g *Ground) error {
	if _, ok := r.grounds[g.ID]; !ok {
		return ErrNotFound
	}
	cp := *g
	r.grounds[g.ID] = &cp
	return nil
}

func (r *memoryRepo) SetActive(ctx context.Context, id string, active bool) error {
	g, ok := r.grounds[id]
	if !ok {
		return ErrNotFound
	}
	g.IsActive = active
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.grounds[id]; !ok {
		return ErrNotFound
	}
	delete(r.grounds, id)
	return nil
}

func validRequest() CreateRequest {
	return CreateRequest{
		Name:        "City Turf Arena",
		Description: strings.Repeat("A well maintained artificial turf. ", 3),
		Price:       500,
		OpeningTime: "06:00",
		ClosingTime: "22:00",
		Location: Location{
			Address: "12 MG Road",
			City:    "Pune",
			State:   "Maharashtra",
			Pincode: "411001",
		},
		Gallery:   []string{"/files/cover-image"},
		CreatedBy: "admin-1",
	}
}

func TestCreateGroundValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*CreateRequest)
		wantErr error
	}{
		{"short name", func(r *CreateRequest) { r.Name = "ab" }, ErrNameTooShort},
		{"short description", func(r *CreateRequest) { r.Description = "too short" }, ErrDescriptionTooShort},
		{"zero price", func(r *CreateRequest) { r.Price = 0 }, ErrInvalidPrice},
		{"missing city", func(r *CreateRequest) { r.Location.City = "" }, ErrMissingLocation},
		{"bad pincode", func(r *CreateRequest) { r.Location.Pincode = "12345" }, ErrInvalidPincode},
		{"alpha pincode", func(r *CreateRequest) { r.Location.Pincode = "41100a" }, ErrInvalidPincode},
		{"missing hours", func(r *CreateRequest) { r.OpeningTime = "" }, ErrInvalidHours},
		{"closing before opening", func(r *CreateRequest) { r.OpeningTime, r.ClosingTime = "22:00", "06:00" }, ErrInvalidHours},
		{"empty gallery", func(r *CreateRequest) { r.Gallery = nil }, ErrGalleryRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newMemoryRepo())
			req := validRequest()
			tt.mutate(&req)

			_, err := svc.Create(ctx, req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("24x7 skips the hours check", func(t *testing.T) {
		svc := NewService(newMemoryRepo())
		req := validRequest()
		req.Is24x7 = true
		req.OpeningTime, req.ClosingTime = "", ""

		g, err := svc.Create(ctx, req)
		require.NoError(t, err)
		assert.True(t, g.Is24x7)
	})

	t.Run("valid request", func(t *testing.T) {
		svc := NewService(newMemoryRepo())

		g, err := svc.Create(ctx, validRequest())
		require.NoError(t, err)
		assert.NotEmpty(t, g.ID)
		assert.True(t, g.IsActive)
		assert.Equal(t, g.Gallery[0], g.Cover)
	})
}

func TestGetPublicHidesInactive(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	svc := NewService(repo)

	g, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	active, err := svc.ToggleActive(ctx, g.ID)
	require.NoError(t, err)
	require.False(t, active)

	_, err = svc.GetPublic(ctx, g.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Admin lookup still sees it.
	got, err := svc.GetByID(ctx, g.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestUpdateGround(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryRepo())

	g, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	req := UpdateRequest{
		Name:        "Renamed Arena",
		Description: validRequest().Description,
		Price:       750,
		OpeningTime: "07:00",
		ClosingTime: "23:00",
		Location:    validRequest().Location,
		Gallery:     []string{"/files/new-cover", "/files/second"},
	}

	updated, err := svc.Update(ctx, g.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Arena", updated.Name)
	assert.Equal(t, 750.0, updated.Price)
	assert.Equal(t, "/files/new-cover", updated.Cover)
}

func TestDeleteGround(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryRepo())

	g, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, g.ID))
	assert.ErrorIs(t, svc.Delete(ctx, g.ID), ErrNotFound)
}
