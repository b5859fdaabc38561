package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. Pending is assigned at creation; the rest are reached
// through admin-driven transitions only.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// ValidStatuses lists every status an order may hold.
var ValidStatuses = []string{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}

// Delivery methods accepted at checkout.
const (
	DeliveryDesktop = "desktop"
	DeliveryHome    = "home"
)

var (
	ErrNotFound         = errors.New("order not found")
	ErrDuplicateOrderID = errors.New("duplicate order ID")
	ErrInvalidStatus    = errors.New("invalid order status")
)

// ValidationError reports a rejected cart submission. MissingFields is
// populated when required top-level fields are absent so the HTTP layer can
// echo them back to the caller.
type ValidationError struct {
	Message       string
	MissingFields []string
}

func (e *ValidationError) Error() string {
	if len(e.MissingFields) > 0 {
		return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.MissingFields, ", "))
	}
	return e.Message
}

// Item is one purchased line inside an order. Products are referenced by id
// only; name, image and price are snapshots taken at checkout.
type Item struct {
	ProductID string  `bson:"productId" json:"productId"`
	Name      string  `bson:"name" json:"name"`
	Image     string  `bson:"image" json:"image"`
	Price     float64 `bson:"price" json:"price"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	ItemTotal float64 `bson:"itemTotal" json:"itemTotal"`
}

// Order is one customer purchase.
type Order struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	OrderID        string             `bson:"orderId" json:"orderId"`
	Status         string             `bson:"status" json:"status"`
	OrderDate      time.Time          `bson:"orderDate" json:"orderDate"`
	FirstName      string             `bson:"firstName" json:"firstName"`
	LastName       string             `bson:"lastName" json:"lastName"`
	Phone          string             `bson:"phone" json:"phone"`
	Address        string             `bson:"address" json:"address"`
	City           string             `bson:"city" json:"city"`
	DeliveryMethod string             `bson:"deliveryMethod" json:"deliveryMethod"`
	Notes          string             `bson:"notes" json:"notes"`
	Items          []Item             `bson:"items" json:"items"`
	ItemCount      int                `bson:"itemCount" json:"itemCount"`
	Subtotal       float64            `bson:"subtotal" json:"subtotal"`
	ShippingFee    float64            `bson:"shippingFee" json:"shippingFee"`
	Total          float64            `bson:"total" json:"total"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsValidStatus reports whether s is one of the five order statuses.
func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}
