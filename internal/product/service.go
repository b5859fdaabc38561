package product

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}

// ListHome returns promoted products ordered by their home position.
func (s *Service) ListHome(ctx context.Context) ([]Product, error) {
	return s.repo.ListHome(ctx)
}

func (s *Service) GetByID(ctx context.Context, id primitive.ObjectID) (Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in Input) (Product, error) {
	if err := validate(in); err != nil {
		return Product{}, err
	}

	homePosition := int(in.HomePosition)
	if !bool(in.DisplayHome) {
		homePosition = 0
	}

	p := Product{
		Name:             strings.TrimSpace(in.Name),
		SmallDescription: in.SmallDescription,
		Description:      in.Description,
		Price:            float64(in.Price),
		Image:            NormalizeImagePath(in.Image),
		AdditionalImages: normalizeImages(in.AdditionalImages.Values),
		Stock:            Stock{Quantity: in.Stock.Quantity, Status: StatusForQuantity(in.Stock.Quantity)},
		DisplayHome:      bool(in.DisplayHome),
		HomePosition:     homePosition,
		CreatedAt:        time.Now().UTC(),
	}
	return s.repo.Insert(ctx, p)
}

// Update rewrites a product, preserving stored images when the payload does
// not carry replacements. Stock status is always recomputed from quantity.
func (s *Service) Update(ctx context.Context, id primitive.ObjectID, in Input) (Product, error) {
	if err := validate(in); err != nil {
		return Product{}, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Product{}, err
	}

	image := existing.Image
	if in.Image != "" {
		image = NormalizeImagePath(in.Image)
	}
	additional := existing.AdditionalImages
	if in.AdditionalImages.Provided {
		additional = normalizeImages(in.AdditionalImages.Values)
	}

	quantity := 0
	if in.Stock.Provided {
		quantity = in.Stock.Quantity
	}

	updated := Product{
		ID:               id,
		Name:             strings.TrimSpace(in.Name),
		SmallDescription: in.SmallDescription,
		Description:      in.Description,
		Price:            float64(in.Price),
		Image:            image,
		AdditionalImages: additional,
		Stock:            Stock{Quantity: quantity, Status: StatusForQuantity(quantity)},
		DisplayHome:      bool(in.DisplayHome),
		HomePosition:     int(in.HomePosition),
		CreatedAt:        existing.CreatedAt,
	}
	return s.repo.Update(ctx, id, updated)
}

// Delete removes the product and returns the removed record so the caller
// can clean up any files it owned.
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) (Product, error) {
	return s.repo.Delete(ctx, id)
}

func validate(in Input) error {
	errs := map[string]string{}
	if strings.TrimSpace(in.Name) == "" {
		errs["name"] = "Product name is required"
	}
	if float64(in.Price) <= 0 {
		errs["price"] = "Valid price is required"
	}
	if strings.TrimSpace(in.Description) == "" {
		errs["description"] = "Description is required"
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

func normalizeImages(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		out = append(out, NormalizeImagePath(p))
	}
	return out
}
