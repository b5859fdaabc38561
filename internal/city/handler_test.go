package city

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func setupApp(repo Repository) *fiber.App {
	app := fiber.New()
	h := NewHandler(NewService(repo, zap.NewNop()), zap.NewNop(), true)
	h.RegisterPublicRoutes(app)
	h.RegisterAdminRoutes(app, func(c *fiber.Ctx) error { return c.Next() })
	return app
}

func TestListCities_AutoSeeds(t *testing.T) {
	app := setupApp(&memRepo{})

	res, err := app.Test(httptest.NewRequest("GET", "/api/cities", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", res.StatusCode)
	}

	var cities []City
	if err := json.NewDecoder(res.Body).Decode(&cities); err != nil {
		t.Fatal(err)
	}
	if len(cities) != len(DefaultCities) {
		t.Errorf("len = %d, want %d", len(cities), len(DefaultCities))
	}
}

func TestUpdateFees_RejectsNonArray(t *testing.T) {
	app := setupApp(&memRepo{})

	body := []byte(`{"updates": {"_id": "x"}}`)
	req := httptest.NewRequest("PUT", "/api/cities", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", res.StatusCode)
	}
}

func TestUpdateFees_CoercesNonNumeric(t *testing.T) {
	repo := &memRepo{}
	app := setupApp(repo)

	// seed first
	if _, err := app.Test(httptest.NewRequest("GET", "/api/cities", nil), -1); err != nil {
		t.Fatal(err)
	}
	target := repo.cities[0]

	payload := map[string]interface{}{
		"updates": []map[string]interface{}{
			{"_id": target.ID.Hex(), "desktopFee": "abc", "houseFee": "300"},
		},
	}
	b, _ := json.Marshal(payload)
	req := httptest.NewRequest("PUT", "/api/cities", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", res.StatusCode)
	}

	for _, c := range repo.cities {
		if c.ID == target.ID {
			if c.DesktopFee != 0 {
				t.Errorf("desktopFee = %d, want 0 for non-numeric input", c.DesktopFee)
			}
			if c.HouseFee != 300 {
				t.Errorf("houseFee = %d, want 300", c.HouseFee)
			}
		}
	}
}
