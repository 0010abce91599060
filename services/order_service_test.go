package services

import (
	"errors"
	"testing"
	"time"

	"backend/entity"
)

func fillCart(t *testing.T, svc *CartService, userID uint, items []AddToCartIn) {
	t.Helper()
	for i := range items {
		if err := svc.Add(userID, &items[i]); err != nil {
			t.Fatalf("fill cart: %v", err)
		}
	}
}

func TestPlaceOrderFromCart(t *testing.T) {
	db := newTestDB(t)
	cartSvc := newCartService(t, db)
	orderSvc := newOrderService(t, db)
	user := seedUser(t, db, "buyer@example.com")
	productA := seedProduct(t, db, "Mango Grahams")
	productB := seedProduct(t, db, "Mango Sticky Rice")

	fillCart(t, cartSvc, user.ID, []AddToCartIn{
		{ProductID: productA.ID, Size: entity.SizeTub, Quantity: 2, UnitPrice: 200},
		{ProductID: productB.ID, Size: entity.SizeBig, Quantity: 1, UnitPrice: 1400},
	})

	order, err := orderSvc.PlaceOrderFromCart(user.ID, validDelivery(t))
	if err != nil {
		t.Fatalf("place order: %v", err)
	}

	if order.Total != 1800 {
		t.Errorf("want total 1800, got %v", order.Total)
	}
	if order.Status != entity.StatusPending {
		t.Errorf("want initial status pending, got %s", order.Status)
	}
	if len(order.Items) != 2 {
		t.Fatalf("want two order items, got %d", len(order.Items))
	}

	totals := map[float64]bool{}
	for _, it := range order.Items {
		totals[it.TotalPrice] = true
		if it.CartID == nil {
			t.Error("cart-sourced item must keep its originating cart id")
		}
	}
	if !totals[400] || !totals[1400] {
		t.Errorf("want line totals 400 and 1400, got %v", totals)
	}

	var remaining int64
	db.Model(&entity.CartItem{}).Count(&remaining)
	if remaining != 0 {
		t.Errorf("cart must be emptied after checkout, %d items left", remaining)
	}

	var carts int64
	db.Model(&entity.Cart{}).Count(&carts)
	if carts != 1 {
		t.Errorf("cart row itself must persist, got %d", carts)
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	db := newTestDB(t)
	orderSvc := newOrderService(t, db)
	user := seedUser(t, db, "buyer@example.com")

	_, err := orderSvc.PlaceOrderFromCart(user.ID, validDelivery(t))
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("want ErrEmptyCart, got %v", err)
	}

	var orders, items int64
	db.Model(&entity.Order{}).Count(&orders)
	db.Model(&entity.OrderItem{}).Count(&items)
	if orders != 0 || items != 0 {
		t.Errorf("empty-cart checkout must write nothing, got %d orders %d items", orders, items)
	}
}

func TestPlaceOrderSnapshotsSurviveProductDeletion(t *testing.T) {
	db := newTestDB(t)
	cartSvc := newCartService(t, db)
	orderSvc := newOrderService(t, db)
	user := seedUser(t, db, "buyer@example.com")
	product := seedProduct(t, db, "Yema Cake")

	fillCart(t, cartSvc, user.ID, []AddToCartIn{
		{ProductID: product.ID, Size: entity.SizeTub, Quantity: 1, UnitPrice: 150,
			ProductImage: "product_1_yema_1.png"},
	})

	// product vanishes between add and checkout
	if err := db.Unscoped().Delete(&entity.Product{}, product.ID).Error; err != nil {
		t.Fatal(err)
	}

	order, err := orderSvc.PlaceOrderFromCart(user.ID, validDelivery(t))
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if order.Items[0].ProductName != UnknownProductName {
		t.Errorf("want sentinel name for dangling reference, got %q", order.Items[0].ProductName)
	}
	if order.Items[0].ProductImage != "product_1_yema_1.png" {
		t.Errorf("want add-time image snapshot on the order item, got %q", order.Items[0].ProductImage)
	}
}

func TestPlaceOrderRejectsPastDeliveryDate(t *testing.T) {
	db := newTestDB(t)
	orderSvc := newOrderService(t, db)
	user := seedUser(t, db, "buyer@example.com")

	details := validDelivery(t)
	details.DeliveryDate = "2020-01-01"
	_, err := orderSvc.PlaceOrderFromCart(user.ID, details)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if len(verr.Fields["delivery_date"]) == 0 {
		t.Errorf("want delivery_date message, got %v", verr.Fields)
	}
}

func TestParseDeliveryDateBoundary(t *testing.T) {
	// today in the server's local timezone is not "after today"
	today := time.Now().Format("2006-01-02")
	if _, err := parseDeliveryDate(today); err == nil {
		t.Error("today's date must be rejected")
	}

	// tomorrow local is the first acceptable date
	if _, err := parseDeliveryDate(tomorrow()); err != nil {
		t.Errorf("tomorrow must be accepted, got %v", err)
	}

	if _, err := parseDeliveryDate("18-06-2026"); err == nil {
		t.Error("malformed date must be rejected")
	}
}

func TestQuickOrderBypassesCart(t *testing.T) {
	db := newTestDB(t)
	orderSvc := newOrderService(t, db)
	user := seedUser(t, db, "buyer@example.com")
	product := seedProduct(t, db, "Hardinera")

	order, err := orderSvc.QuickOrder(user.ID, &QuickOrderIn{
		DeliveryDetails: *validDelivery(t),
		ProductID:       product.ID,
		Size:            entity.SizeTub,
		Quantity:        3,
		ProductName:     "Hardinera",
		ProductPrice:    280,
	})
	if err != nil {
		t.Fatalf("quick order: %v", err)
	}
	if order.Total != 840 {
		t.Errorf("want total 840, got %v", order.Total)
	}
	if len(order.Items) != 1 {
		t.Fatalf("want one item, got %d", len(order.Items))
	}
	if order.Items[0].CartID != nil {
		t.Error("quick-order item must have nil cart id")
	}
}

func TestCancelOnlyWhenPending(t *testing.T) {
	db := newTestDB(t)
	cartSvc := newCartService(t, db)
	orderSvc := newOrderService(t, db)
	user := seedUser(t, db, "buyer@example.com")
	product := seedProduct(t, db, "Espasol")

	fillCart(t, cartSvc, user.ID, []AddToCartIn{
		{ProductID: product.ID, Size: entity.SizeTub, Quantity: 1, UnitPrice: 150},
	})
	order, err := orderSvc.PlaceOrderFromCart(user.ID, validDelivery(t))
	if err != nil {
		t.Fatal(err)
	}

	cancelled, err := orderSvc.Cancel(user.ID, order.ID)
	if err != nil {
		t.Fatalf("first cancel: %v", err)
	}
	if cancelled.Status != entity.StatusCancelled {
		t.Errorf("want cancelled, got %s", cancelled.Status)
	}

	// second cancel must fail: no longer pending
	_, err = orderSvc.Cancel(user.ID, order.ID)
	var serr *InvalidStateError
	if !errors.As(err, &serr) {
		t.Fatalf("want InvalidStateError on double cancel, got %v", err)
	}
}

func TestCancelNotOwned(t *testing.T) {
	db := newTestDB(t)
	orderSvc := newOrderService(t, db)
	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")

	order := entity.Order{UserID: owner.ID, Status: entity.StatusPending, Total: 100}
	if err := db.Create(&order).Error; err != nil {
		t.Fatal(err)
	}

	_, err := orderSvc.Cancel(other.ID, order.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound for foreign order, got %v", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	db := newTestDB(t)
	orderSvc := newOrderService(t, db)
	user := seedUser(t, db, "buyer@example.com")

	order := entity.Order{UserID: user.ID, Status: entity.StatusDelivered, Total: 100}
	if err := db.Create(&order).Error; err != nil {
		t.Fatal(err)
	}

	// default policy allows any transition, including backward
	updated, err := orderSvc.UpdateStatus(order.ID, entity.StatusPreparing)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != entity.StatusPreparing {
		t.Errorf("want preparing, got %s", updated.Status)
	}

	if _, err := orderSvc.UpdateStatus(9999, entity.StatusPending); !errors.Is(err, ErrNotFound) {
		t.Errorf("want ErrNotFound for unknown order, got %v", err)
	}
}

func TestUpdateStatusRespectsPolicy(t *testing.T) {
	db := newTestDB(t)
	orderSvc := newOrderService(t, db)
	orderSvc.Policy = func(from, to entity.OrderStatus) bool {
		return from == entity.StatusPending // forward from pending only
	}
	user := seedUser(t, db, "buyer@example.com")

	order := entity.Order{UserID: user.ID, Status: entity.StatusDelivered, Total: 100}
	if err := db.Create(&order).Error; err != nil {
		t.Fatal(err)
	}

	_, err := orderSvc.UpdateStatus(order.ID, entity.StatusPending)
	var serr *InvalidStateError
	if !errors.As(err, &serr) {
		t.Fatalf("want InvalidStateError under restrictive policy, got %v", err)
	}
}

func TestListForUserPaginates(t *testing.T) {
	db := newTestDB(t)
	orderSvc := newOrderService(t, db)
	user := seedUser(t, db, "buyer@example.com")

	for i := 0; i < 15; i++ {
		order := entity.Order{UserID: user.ID, Status: entity.StatusPending, Total: float64(i)}
		if err := db.Create(&order).Error; err != nil {
			t.Fatal(err)
		}
	}

	orders, total, err := orderSvc.ListForUser(user.ID, 2, 10)
	if err != nil {
		t.Fatal(err)
	}
	if total != 15 {
		t.Errorf("want total 15, got %d", total)
	}
	if len(orders) != 5 {
		t.Errorf("want 5 on second page, got %d", len(orders))
	}
}
