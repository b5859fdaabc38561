package order

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Shipping fees by delivery method. The per-city fee table is a separate,
// admin-managed dataset that checkout deliberately does not consult.
const (
	HomeShippingFee    = 500
	DesktopShippingFee = 0
)

// CartItem is one line of a cart submission as sent by the storefront.
type CartItem struct {
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	ProductImage string  `json:"productImage"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
}

// CreateOrderInput is a checkout submission.
type CreateOrderInput struct {
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Phone          string     `json:"phone"`
	Address        string     `json:"address"`
	City           string     `json:"city"`
	DeliveryMethod string     `json:"deliveryMethod"`
	Notes          string     `json:"notes"`
	Items          []CartItem `json:"items"`
}

// Service implements the order workflow: cart validation, price and
// shipping computation, order id assignment and persistence.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// Create validates the submission, computes totals and persists the order.
// Nothing is written when validation fails. A colliding order id surfaces
// as ErrDuplicateOrderID; the caller may resubmit.
func (s *Service) Create(ctx context.Context, in CreateOrderInput) (Order, error) {
	if err := validate(&in); err != nil {
		return Order{}, err
	}

	items := make([]Item, 0, len(in.Items))
	itemCount := 0
	subtotal := decimal.Zero
	for _, ci := range in.Items {
		lineTotal := decimal.NewFromFloat(ci.Price).Mul(decimal.NewFromInt(int64(ci.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		itemCount += ci.Quantity
		items = append(items, Item{
			ProductID: ci.ProductID,
			Name:      ci.ProductName,
			Image:     ci.ProductImage,
			Price:     ci.Price,
			Quantity:  ci.Quantity,
			ItemTotal: round2(lineTotal),
		})
	}

	fee := decimal.NewFromInt(ShippingFee(in.DeliveryMethod))
	now := time.Now().UTC()

	ord := Order{
		OrderID:        NewOrderID(),
		Status:         StatusPending,
		OrderDate:      now,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Phone:          in.Phone,
		Address:        in.Address,
		City:           in.City,
		DeliveryMethod: in.DeliveryMethod,
		Notes:          in.Notes,
		Items:          items,
		ItemCount:      itemCount,
		Subtotal:       round2(subtotal),
		ShippingFee:    round2(fee),
		Total:          round2(subtotal.Add(fee)),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	return s.repo.Insert(ctx, ord)
}

func (s *Service) List(ctx context.Context) ([]Order, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByOrderID(ctx context.Context, orderID string) (Order, error) {
	return s.repo.GetByOrderID(ctx, orderID)
}

// SetStatus transitions an order to newStatus. Setting the current status
// again succeeds without effect beyond a fresh updatedAt.
func (s *Service) SetStatus(ctx context.Context, orderID, newStatus string) (Order, error) {
	if !IsValidStatus(newStatus) {
		return Order{}, ErrInvalidStatus
	}
	return s.repo.UpdateStatus(ctx, orderID, newStatus)
}

// Delete removes an order and returns the removed record.
func (s *Service) Delete(ctx context.Context, orderID string) (Order, error) {
	return s.repo.Delete(ctx, orderID)
}

// requiredFields in the order in which missing ones are reported.
var requiredFields = []string{"firstName", "lastName", "phone", "address", "city", "deliveryMethod"}

func validate(in *CreateOrderInput) error {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	in.City = strings.TrimSpace(in.City)
	in.DeliveryMethod = strings.TrimSpace(in.DeliveryMethod)
	in.Notes = strings.TrimSpace(in.Notes)

	values := map[string]string{
		"firstName":      in.FirstName,
		"lastName":       in.LastName,
		"phone":          in.Phone,
		"address":        in.Address,
		"city":           in.City,
		"deliveryMethod": in.DeliveryMethod,
	}
	var missing []string
	for _, f := range requiredFields {
		if values[f] == "" {
			missing = append(missing, f)
		}
	}
	if len(in.Items) == 0 {
		missing = append(missing, "items")
	}
	if len(missing) > 0 {
		return &ValidationError{Message: "Missing required fields", MissingFields: missing}
	}

	if in.DeliveryMethod != DeliveryDesktop && in.DeliveryMethod != DeliveryHome {
		return &ValidationError{Message: fmt.Sprintf("deliveryMethod must be %q or %q", DeliveryDesktop, DeliveryHome)}
	}

	for i, it := range in.Items {
		if it.ProductID == "" || it.ProductName == "" || it.ProductImage == "" {
			return &ValidationError{Message: fmt.Sprintf("item %d is missing productId, productName or productImage", i)}
		}
		if it.Price < 0 {
			return &ValidationError{Message: fmt.Sprintf("item %d has a negative price", i)}
		}
		if it.Quantity < 1 {
			return &ValidationError{Message: fmt.Sprintf("item %d must have quantity of at least 1", i)}
		}
	}
	return nil
}

// ShippingFee returns the flat fee charged for a delivery method.
func ShippingFee(method string) int64 {
	if method == DeliveryHome {
		return HomeShippingFee
	}
	return DesktopShippingFee
}

// NewOrderID builds an order id from the current time in milliseconds and a
// random disambiguator. Uniqueness is ultimately enforced by the store's
// unique index on orderId.
func NewOrderID() string {
	return fmt.Sprintf("ORD-%d-%d", time.Now().UnixMilli(), rand.Intn(1000))
}

// round2 rounds half away from zero to two decimal places.
func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
