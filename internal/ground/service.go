package ground

import (
	"context"
	"regexp"
	"strings"
)

type CreateRequest struct {
	Name        string
	Description string
	Price       float64
	OpeningTime string
	ClosingTime string
	Is24x7      bool
	Location    Location
	Gallery     []string
	CreatedBy   string
}

type UpdateRequest struct {
	Name        string
	Description string
	Price       float64
	OpeningTime string
	ClosingTime string
	Is24x7      bool
	Location    Location
	Gallery     []string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Ground, error)
	// GetPublic returns an active ground; inactive grounds are reported as not found.
	GetPublic(ctx context.Context, id string) (*Ground, error)
	GetByID(ctx context.Context, id string) (*Ground, error)
	ListPublic(ctx context.Context) ([]*Ground, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Ground, error)
	// ToggleActive flips the isActive flag and returns the new value.
	ToggleActive(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

var pincodeRe = regexp.MustCompile(`^\d{6}$`)

func validateFields(name, description string, price float64, openingTime, closingTime string, is24x7 bool, loc Location, gallery []string) error {
	if len(strings.TrimSpace(name)) < 3 {
		return ErrNameTooShort
	}
	if len(strings.TrimSpace(description)) < 50 {
		return ErrDescriptionTooShort
	}
	if price < 1 {
		return ErrInvalidPrice
	}
	if strings.TrimSpace(loc.Address) == "" || strings.TrimSpace(loc.City) == "" || strings.TrimSpace(loc.State) == "" {
		return ErrMissingLocation
	}
	if !pincodeRe.MatchString(loc.Pincode) {
		return ErrInvalidPincode
	}
	// When the ground is not 24x7, both times must be present and the window
	// must be non-empty. "HH:MM" strings compare correctly lexicographically.
	if !is24x7 {
		if openingTime == "" || closingTime == "" || closingTime <= openingTime {
			return ErrInvalidHours
		}
	}
	if len(gallery) == 0 {
		return ErrGalleryRequired
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Ground, error) {
	if err := validateFields(req.Name, req.Description, req.Price, req.OpeningTime, req.ClosingTime, req.Is24x7, req.Location, req.Gallery); err != nil {
		return nil, err
	}

	g := &Ground{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		OpeningTime: req.OpeningTime,
		ClosingTime: req.ClosingTime,
		Is24x7:      req.Is24x7,
		Location:    req.Location,
		Gallery:     req.Gallery,
		Cover:       req.Gallery[0],
		CreatedBy:   req.CreatedBy,
		IsActive:    true,
	}

	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *service) GetPublic(ctx context.Context, id string) (*Ground, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !g.IsActive {
		return nil, ErrNotFound
	}
	return g, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Ground, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListPublic(ctx context.Context) ([]*Ground, error) {
	return s.repo.List(ctx, true)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Ground, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validateFields(req.Name, req.Description, req.Price, req.OpeningTime, req.ClosingTime, req.Is24x7, req.Location, req.Gallery); err != nil {
		return nil, err
	}

	g.Name = strings.TrimSpace(req.Name)
	g.Description = strings.TrimSpace(req.Description)
	g.Price = req.Price
	g.OpeningTime = req.OpeningTime
	g.ClosingTime = req.ClosingTime
	g.Is24x7 = req.Is24x7
	g.Location = req.Location
	g.Gallery = req.Gallery
	g.Cover = req.Gallery[0]

	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *service) ToggleActive(ctx context.Context, id string) (bool, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}

	next := !g.IsActive
	if err := s.repo.SetActive(ctx, id, next); err != nil {
		return false, err
	}
	return next, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
