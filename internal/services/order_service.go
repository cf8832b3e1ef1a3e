package services

import (
	"errors"

	"github.com/google/uuid"

	"github.com/velorahq/velora-backend/internal/models"
	"github.com/velorahq/velora-backend/internal/store"
)

var (
	ErrEmptyOrder      = errors.New("order must contain at least one item")
	ErrInvalidQuantity = errors.New("item quantity must be a positive integer")
	ErrProductInactive = errors.New("product is not available")
)

// OrderItemInput is one requested line of a checkout. Title and price are
// never taken from the client; they are snapshotted from the catalog.
type OrderItemInput struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// OrderService runs checkout: coin redemption and order creation as one
// atomic unit.
type OrderService struct {
	store *store.Store
}

func NewOrderService(st *store.Store) *OrderService {
	return &OrderService{store: st}
}

// PlaceOrder validates the request shape before any write, then in a single
// transaction redeems coinsUsed (when positive), resolves each product
// against the catalog, and persists the order with its items. Any failure
// after the redemption rolls the redemption back.
func (s *OrderService) PlaceOrder(userID uuid.UUID, items []OrderItemInput, coinsUsed int) (*models.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}
	if coinsUsed < 0 {
		return nil, ErrInvalidAmount
	}

	// The order id is generated up front so the redemption ledger entry can
	// reference it before the row exists.
	order := &models.Order{
		BaseModel: models.BaseModel{ID: uuid.New()},
		UserID:    userID,
		CoinsUsed: coinsUsed,
	}

	err := s.store.Transaction(func(tx *store.Store) error {
		if coinsUsed > 0 {
			if _, _, err := redeemCoins(tx, userID, coinsUsed, models.TxTypeRedeemed, "Coins redeemed at checkout", &order.ID); err != nil {
				return err
			}
		}

		for _, item := range items {
			product, err := tx.GetProduct(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return store.ErrProductNotFound
			}
			if !product.IsActive {
				return ErrProductInactive
			}

			order.Items = append(order.Items, models.OrderItem{
				OrderID:   order.ID,
				ProductID: product.ID,
				Title:     product.Title,
				UnitPrice: product.Price,
				Quantity:  item.Quantity,
				LineTotal: product.Price * float64(item.Quantity),
			})
			order.Total += product.Price * float64(item.Quantity)
		}

		return tx.CreateOrder(order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}
