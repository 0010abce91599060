package services

import (
	"errors"

	"backend/entity"
	"backend/ws"

	"gorm.io/gorm"
)

// TransitionPolicy decides which admin status overwrites are allowed. The
// default permits every transition, including moving backward. That is
// the existing admin-override behavior, made explicit and swappable here
// instead of hard-coding a transition graph.
type TransitionPolicy func(from, to entity.OrderStatus) bool

func AllowAllTransitions(from, to entity.OrderStatus) bool { return true }

// Cancel transitions the caller's own order from pending to cancelled. Any
// other current status fails: the order is already being processed. No
// stock restoration, no refund.
func (s *OrderService) Cancel(userID, orderID uint) (*entity.Order, error) {
	o, err := s.Repo.GetForUser(userID, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, entity.StatusPending, entity.StatusCancelled)
		if err != nil {
			return err
		}
		if affected == 0 {
			return &InvalidStateError{Reason: "Cannot cancel order. Order is already being processed."}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.Status = entity.StatusCancelled
	s.Feed.Publish(ws.OrderEvent{
		Type: "status_changed", OrderID: o.ID,
		Status: string(o.Status), Total: o.Total,
	})
	return o, nil
}

// UpdateStatus is the privileged overwrite. The policy is the only guard;
// there is no ownership check because only admins reach this path.
func (s *OrderService) UpdateStatus(orderID uint, status entity.OrderStatus) (*entity.Order, error) {
	if !status.Valid() {
		return nil, fieldError("status", "The selected status is invalid.")
	}

	o, err := s.Repo.Get(orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if !s.Policy(o.Status, status) {
		return nil, &InvalidStateError{Reason: "Status transition not allowed."}
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatus(tx, o.ID, status)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.Status = status
	s.Feed.Publish(ws.OrderEvent{
		Type: "status_changed", OrderID: o.ID,
		Status: string(o.Status), Total: o.Total,
	})
	return o, nil
}
