package services

import (
	"errors"
	"log"
	"time"

	"backend/entity"
	"backend/repository"
	"backend/ws"

	"gorm.io/gorm"
)

type OrderService struct {
	DB          *gorm.DB
	Repo        *repository.OrderRepository
	CartRepo    *repository.CartRepository
	ProductRepo *repository.ProductRepository
	Policy      TransitionPolicy
	Feed        *ws.OrderFeed
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	cartRepo *repository.CartRepository,
	productRepo *repository.ProductRepository,
	policy TransitionPolicy,
	feed *ws.OrderFeed,
) *OrderService {
	return &OrderService{
		DB: db, Repo: repo, CartRepo: cartRepo, ProductRepo: productRepo,
		Policy: policy, Feed: feed,
	}
}

// UnknownProductName is snapshotted onto an order item when the product
// reference no longer resolves at checkout time.
const UnknownProductName = "Unknown Product"

// DeliveryDetails is the contact/delivery part shared by both checkout
// paths.
type DeliveryDetails struct {
	Email         string               `json:"email" binding:"required,email"`
	Phone         string               `json:"phone" binding:"required"`
	StreetAddress string               `json:"street_address" binding:"required"`
	City          string               `json:"city" binding:"required"`
	ZipCode       string               `json:"zip_code" binding:"required"`
	DeliveryDate  string               `json:"delivery_date" binding:"required"`
	PaymentMethod entity.PaymentMethod `json:"payment_method" binding:"required,oneof=cash gcash"`
	Instructions  string               `json:"instructions" binding:"max=500"`
}

type QuickOrderIn struct {
	DeliveryDetails
	ProductID    uint        `json:"product_id" binding:"required"`
	Size         entity.Size `json:"size" binding:"required,oneof=big medium platter tub"`
	Quantity     int         `json:"quantity" binding:"required,min=1"`
	ProductName  string      `json:"product_name" binding:"required"`
	ProductImage string      `json:"product_image"`
	ProductPrice float64     `json:"product_price" binding:"gte=0"`
}

// parseDeliveryDate enforces the one rule gin's binding cannot express:
// the date must be strictly after today, in the server's local timezone.
func parseDeliveryDate(raw string) (time.Time, error) {
	d, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return time.Time{}, fieldError("delivery_date", "The delivery_date is not a valid date.")
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if !d.After(today) {
		return time.Time{}, fieldError("delivery_date", "The delivery_date must be a date after today.")
	}
	return d, nil
}

// PlaceOrderFromCart converts the user's mutable cart into an immutable
// order: one order header, one item snapshot per cart line, cart items
// deleted, all in one transaction. Selection flags are ignored; the whole
// cart is the order.
func (s *OrderService) PlaceOrderFromCart(userID uint, in *DeliveryDetails) (*entity.Order, error) {
	deliveryDate, err := parseDeliveryDate(in.DeliveryDate)
	if err != nil {
		return nil, err
	}

	cart, err := s.CartRepo.GetWithItems(userID)
	if err != nil {
		return nil, err
	}
	if cart.ID == 0 || len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	var total float64
	for _, it := range cart.Items {
		total += it.UnitPrice * float64(it.Quantity)
	}

	order := entity.Order{
		UserID:        userID,
		Email:         in.Email,
		Phone:         in.Phone,
		StreetAddress: in.StreetAddress,
		City:          in.City,
		ZipCode:       in.ZipCode,
		DeliveryDate:  deliveryDate,
		Instructions:  in.Instructions,
		PaymentMethod: in.PaymentMethod,
		Status:        entity.StatusPending,
		Total:         total,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.Create(tx, &order); err != nil {
			return err
		}

		for _, it := range cart.Items {
			name := UnknownProductName
			if it.Product != nil {
				name = it.Product.Name
			}
			cartID := cart.ID
			oi := entity.OrderItem{
				OrderID:         order.ID,
				CartID:          &cartID,
				ProductID:       it.ProductID,
				ProductName:     name,
				ProductImage:    it.ProductImage,
				PriceAtPurchase: it.UnitPrice,
				Size:            it.Size,
				Quantity:        it.Quantity,
				TotalPrice:      it.UnitPrice * float64(it.Quantity),
			}
			if err := s.Repo.CreateItem(tx, &oi); err != nil {
				return err
			}
			order.Items = append(order.Items, oi)
		}

		return s.CartRepo.ClearItems(tx, cart.ID)
	})
	if err != nil {
		log.Printf("place order from cart failed for user %d: %v", userID, err)
		return nil, ErrOrderCreation
	}

	s.Feed.Publish(ws.OrderEvent{
		Type: "order_created", OrderID: order.ID,
		Status: string(order.Status), Total: order.Total,
	})
	return &order, nil
}

// QuickOrder places a single-item order bypassing the cart entirely.
// CartID stays nil on the item.
func (s *OrderService) QuickOrder(userID uint, in *QuickOrderIn) (*entity.Order, error) {
	deliveryDate, err := parseDeliveryDate(in.DeliveryDate)
	if err != nil {
		return nil, err
	}

	ok, err := s.ProductRepo.Exists(in.ProductID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fieldError("product_id", "The selected product_id is invalid.")
	}

	total := in.ProductPrice * float64(in.Quantity)
	order := entity.Order{
		UserID:        userID,
		Email:         in.Email,
		Phone:         in.Phone,
		StreetAddress: in.StreetAddress,
		City:          in.City,
		ZipCode:       in.ZipCode,
		DeliveryDate:  deliveryDate,
		Instructions:  in.Instructions,
		PaymentMethod: in.PaymentMethod,
		Status:        entity.StatusPending,
		Total:         total,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.Create(tx, &order); err != nil {
			return err
		}
		oi := entity.OrderItem{
			OrderID:         order.ID,
			CartID:          nil,
			ProductID:       in.ProductID,
			ProductName:     in.ProductName,
			ProductImage:    in.ProductImage,
			PriceAtPurchase: in.ProductPrice,
			Size:            in.Size,
			Quantity:        in.Quantity,
			TotalPrice:      total,
		}
		if err := s.Repo.CreateItem(tx, &oi); err != nil {
			return err
		}
		order.Items = append(order.Items, oi)
		return nil
	})
	if err != nil {
		log.Printf("quick order failed for user %d: %v", userID, err)
		return nil, ErrOrderCreation
	}

	s.Feed.Publish(ws.OrderEvent{
		Type: "order_created", OrderID: order.ID,
		Status: string(order.Status), Total: order.Total,
	})
	return &order, nil
}

func (s *OrderService) ListForUser(userID uint, page, limit int) ([]entity.Order, int64, error) {
	return s.Repo.ListForUser(userID, page, limit)
}

func (s *OrderService) DetailForUser(userID, orderID uint) (*entity.Order, error) {
	o, err := s.Repo.GetForUser(userID, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return o, err
}
