package product

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memRepo struct {
	products map[primitive.ObjectID]Product
}

func newMemRepo() *memRepo {
	return &memRepo{products: map[primitive.ObjectID]Product{}}
}

func (r *memRepo) List(_ context.Context) ([]Product, error) {
	out := make([]Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *memRepo) ListHome(_ context.Context) ([]Product, error) {
	out := make([]Product, 0)
	for _, p := range r.products {
		if p.DisplayHome {
			out = append(out, p)
		}
	}
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].HomePosition < out[i].HomePosition {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (r *memRepo) GetByID(_ context.Context, id primitive.ObjectID) (Product, error) {
	p, ok := r.products[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}

func (r *memRepo) Insert(_ context.Context, p Product) (Product, error) {
	p.ID = primitive.NewObjectID()
	r.products[p.ID] = p
	return p, nil
}

func (r *memRepo) Update(_ context.Context, id primitive.ObjectID, p Product) (Product, error) {
	if _, ok := r.products[id]; !ok {
		return Product{}, ErrNotFound
	}
	p.ID = id
	r.products[id] = p
	return p, nil
}

func (r *memRepo) Delete(_ context.Context, id primitive.ObjectID) (Product, error) {
	p, ok := r.products[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	delete(r.products, id)
	return p, nil
}

func validProductInput() Input {
	return Input{
		Name:        "Onyx watch",
		Description: "A watch",
		Price:       1500,
		Image:       "/uploads/watch.jpg",
		Stock:       StockInput{Quantity: 5, Provided: true},
	}
}

func TestCreate_DerivesStockStatus(t *testing.T) {
	s := NewService(newMemRepo())

	p, err := s.Create(context.Background(), validProductInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Stock.Status != StockAvailable {
		t.Errorf("status = %q, want %q", p.Stock.Status, StockAvailable)
	}

	in := validProductInput()
	in.Stock = StockInput{Quantity: 0, Provided: true}
	p, err = s.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Stock.Status != StockUnavailable {
		t.Errorf("status = %q, want %q", p.Stock.Status, StockUnavailable)
	}
}

func TestCreate_Validation(t *testing.T) {
	s := NewService(newMemRepo())

	in := validProductInput()
	in.Name = "  "
	in.Price = 0

	_, err := s.Create(context.Background(), in)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := verr.Fields["name"]; !ok {
		t.Error("expected name error")
	}
	if _, ok := verr.Fields["price"]; !ok {
		t.Error("expected price error")
	}
}

func TestUpdate_PreservesImagesWhenAbsent(t *testing.T) {
	repo := newMemRepo()
	s := NewService(repo)

	in := validProductInput()
	in.AdditionalImages = ImageList{Values: []string{"/uploads/a.jpg", "/uploads/b.jpg"}, Provided: true}
	created, err := s.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	update := validProductInput()
	update.Image = ""
	update.AdditionalImages = ImageList{}

	updated, err := s.Update(context.Background(), created.ID, update)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Image != created.Image {
		t.Errorf("image = %q, want preserved %q", updated.Image, created.Image)
	}
	if len(updated.AdditionalImages) != 2 {
		t.Errorf("additionalImages = %v, want preserved pair", updated.AdditionalImages)
	}
}

func TestUpdate_ReplacesImagesWhenProvided(t *testing.T) {
	repo := newMemRepo()
	s := NewService(repo)

	created, err := s.Create(context.Background(), validProductInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	update := validProductInput()
	update.Image = "new.jpg"
	update.AdditionalImages = ImageList{Values: []string{"c.jpg"}, Provided: true}

	updated, err := s.Update(context.Background(), created.ID, update)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Image != "/uploads/new.jpg" {
		t.Errorf("image = %q, want /uploads/new.jpg", updated.Image)
	}
	if len(updated.AdditionalImages) != 1 || updated.AdditionalImages[0] != "/uploads/c.jpg" {
		t.Errorf("additionalImages = %v, want [/uploads/c.jpg]", updated.AdditionalImages)
	}
}

func TestUpdate_RecomputesStockStatus(t *testing.T) {
	repo := newMemRepo()
	s := NewService(repo)

	created, err := s.Create(context.Background(), validProductInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	update := validProductInput()
	update.Stock = StockInput{Quantity: 0, Provided: true}
	updated, err := s.Update(context.Background(), created.ID, update)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Stock.Status != StockUnavailable {
		t.Errorf("status = %q, want %q", updated.Stock.Status, StockUnavailable)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	s := NewService(newMemRepo())

	_, err := s.Update(context.Background(), primitive.NewObjectID(), validProductInput())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListHome_Ordered(t *testing.T) {
	repo := newMemRepo()
	s := NewService(repo)

	for i, pos := range []int{3, 1, 2} {
		in := validProductInput()
		in.Name = in.Name + string(rune('a'+i))
		in.DisplayHome = true
		in.HomePosition = FlexInt(pos)
		if _, err := s.Create(context.Background(), in); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	// one product not promoted
	if _, err := s.Create(context.Background(), validProductInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	home, err := s.ListHome(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(home) != 3 {
		t.Fatalf("len = %d, want 3", len(home))
	}
	for i := 1; i < len(home); i++ {
		if home[i-1].HomePosition > home[i].HomePosition {
			t.Errorf("home listing out of order: %v", home)
		}
	}
}
