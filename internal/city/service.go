package city

import (
	"context"

	"go.uber.org/zap"
)

// FeeUpdate adjusts the fees of one city. The fee fields are json.Number-
// compatible raw values in the handler; by the time they reach the service
// they are already coerced to integers (non-numeric input becomes 0).
type FeeUpdate struct {
	ID         string
	DesktopFee int
	HouseFee   int
}

type Service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// EnsureSeeded inserts the fixed city list with zero fees if the table is
// empty. Re-running it against a populated table is a no-op that reports
// the existing count.
func (s *Service) EnsureSeeded(ctx context.Context) (initialized bool, count int, err error) {
	count, err = s.repo.Count(ctx)
	if err != nil {
		return false, 0, err
	}
	if count > 0 {
		return false, count, nil
	}

	cities := make([]City, 0, len(DefaultCities))
	for _, name := range DefaultCities {
		cities = append(cities, City{Name: name})
	}
	if err := s.repo.InsertMany(ctx, cities); err != nil {
		return false, 0, err
	}
	s.log.Info("seeded city fee table", zap.Int("count", len(cities)))
	return true, len(cities), nil
}

// ListAll returns every city ordered by name, seeding the table first when
// it is empty.
func (s *Service) ListAll(ctx context.Context) ([]City, error) {
	if _, _, err := s.EnsureSeeded(ctx); err != nil {
		return nil, err
	}
	return s.repo.ListByName(ctx)
}

// UpdateFees bulk-updates fees and returns the refreshed table.
func (s *Service) UpdateFees(ctx context.Context, updates []FeeUpdate) ([]City, error) {
	if err := s.repo.UpdateFees(ctx, updates); err != nil {
		return nil, err
	}
	return s.repo.ListByName(ctx)
}
