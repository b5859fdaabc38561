package city

import (
	"context"
	"sort"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type memRepo struct {
	cities []City
}

func (r *memRepo) Count(_ context.Context) (int, error) {
	return len(r.cities), nil
}

func (r *memRepo) InsertMany(_ context.Context, cities []City) error {
	for _, c := range cities {
		c.ID = primitive.NewObjectID()
		r.cities = append(r.cities, c)
	}
	return nil
}

func (r *memRepo) ListByName(_ context.Context) ([]City, error) {
	out := make([]City, len(r.cities))
	copy(out, r.cities)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memRepo) UpdateFees(_ context.Context, updates []FeeUpdate) error {
	for _, u := range updates {
		for i := range r.cities {
			if r.cities[i].ID.Hex() == u.ID {
				r.cities[i].DesktopFee = u.DesktopFee
				r.cities[i].HouseFee = u.HouseFee
			}
		}
	}
	return nil
}

func TestEnsureSeeded(t *testing.T) {
	repo := &memRepo{}
	s := NewService(repo, zap.NewNop())

	initialized, count, err := s.EnsureSeeded(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !initialized {
		t.Error("expected first run to initialize")
	}
	if count != len(DefaultCities) {
		t.Errorf("count = %d, want %d", count, len(DefaultCities))
	}

	// second run is a no-op reporting the existing count
	initialized, count, err = s.EnsureSeeded(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if initialized {
		t.Error("expected second run to be a no-op")
	}
	if count != len(DefaultCities) {
		t.Errorf("count = %d, want %d", count, len(DefaultCities))
	}
	if len(repo.cities) != len(DefaultCities) {
		t.Errorf("stored = %d, want %d", len(repo.cities), len(DefaultCities))
	}
}

func TestSeededCitiesHaveZeroFees(t *testing.T) {
	repo := &memRepo{}
	s := NewService(repo, zap.NewNop())

	cities, err := s.ListAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range cities {
		if c.DesktopFee != 0 || c.HouseFee != 0 {
			t.Fatalf("city %s seeded with non-zero fees: %+v", c.Name, c)
		}
	}
}

func TestListAll_SortedByName(t *testing.T) {
	repo := &memRepo{}
	s := NewService(repo, zap.NewNop())

	cities, err := s.ListAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sort.SliceIsSorted(cities, func(i, j int) bool { return cities[i].Name < cities[j].Name }) {
		t.Error("cities not sorted by name")
	}
}

func TestUpdateFees(t *testing.T) {
	repo := &memRepo{}
	s := NewService(repo, zap.NewNop())

	cities, err := s.ListAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	target := cities[0]
	updated, err := s.UpdateFees(context.Background(), []FeeUpdate{
		{ID: target.ID.Hex(), DesktopFee: 200, HouseFee: 450},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, c := range updated {
		if c.ID == target.ID {
			if c.DesktopFee != 200 || c.HouseFee != 450 {
				t.Errorf("fees = %d/%d, want 200/450", c.DesktopFee, c.HouseFee)
			}
			return
		}
	}
	t.Fatal("updated city missing from result")
}
