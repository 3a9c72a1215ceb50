package handlers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"table-ordering-api/middleware"
	"table-ordering-api/models"
	"table-ordering-api/statemachine"
	"table-ordering-api/store"

	"github.com/gin-gonic/gin"
)

// totalTolerance absorbs float rounding when checking a client total
const totalTolerance = 0.005

type OrderItemRequest struct {
	MenuItem string   `json:"menuItem"`
	Name     string   `json:"name" binding:"required"`
	Price    *float64 `json:"price" binding:"required,gte=0"`
	Quantity int      `json:"quantity" binding:"required,min=1"`
	Notes    string   `json:"notes"`
}

type CreateOrderRequest struct {
	TableNumber  string             `json:"tableNumber" binding:"required"`
	CustomerName string             `json:"customerName"`
	CustomerNote string             `json:"customerNote"`
	Items        []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	TotalAmount  *float64           `json:"totalAmount" binding:"required,gte=0"`
}

func (req *CreateOrderRequest) toOrder() (*models.Order, error) {
	table := strings.TrimSpace(req.TableNumber)
	if table == "" {
		return nil, errors.New("tableNumber is required")
	}

	order := &models.Order{
		TableNumber:  table,
		CustomerName: strings.TrimSpace(req.CustomerName),
		CustomerNote: req.CustomerNote,
		TotalAmount:  *req.TotalAmount,
	}
	for _, it := range req.Items {
		order.Items = append(order.Items, models.OrderItem{
			MenuItemID: it.MenuItem,
			Name:       strings.TrimSpace(it.Name),
			Price:      *it.Price,
			Quantity:   it.Quantity,
			Notes:      it.Notes,
		})
	}
	return order, nil
}

// CreateOrder places a diner's order in Pending. The total is taken
// from the client unless VerifyOrderTotal is set.
func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindError(err)})
		return
	}
	order, err := req.toOrder()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if h.opts.VerifyOrderTotal {
		if expected := order.LineTotal(); math.Abs(expected-order.TotalAmount) > totalTolerance {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("totalAmount %.2f does not match item total %.2f", order.TotalAmount, expected),
			})
			return
		}
	}

	if err := h.orders.Create(c.Request.Context(), order); err != nil {
		internalError(c, "Failed to place order", err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func parseStatuses(values []string) ([]models.OrderStatus, error) {
	var statuses []models.OrderStatus
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			s := models.OrderStatus(strings.TrimSpace(part))
			if s == "" {
				continue
			}
			if !s.Valid() {
				return nil, fmt.Errorf("unknown status %q", s)
			}
			statuses = append(statuses, s)
		}
	}
	return statuses, nil
}

// ListOrders returns every order, newest first
func (h *Handler) ListOrders(c *gin.Context) {
	statuses, err := parseStatuses(c.QueryArray("status"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	orders, err := h.orders.List(c.Request.Context(), statuses...)
	if err != nil {
		internalError(c, "Failed to fetch orders", err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrder returns one order with its status history
func (h *Handler) GetOrder(c *gin.Context) {
	ctx := c.Request.Context()
	order, err := h.orders.Get(ctx, c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if err != nil {
		internalError(c, "Failed to fetch order", err)
		return
	}
	history, err := h.orders.History(ctx, order.ID)
	if err != nil {
		internalError(c, "Failed to fetch order", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order, "history": history})
}

type UpdateOrderRequest struct {
	Status        *string `json:"status"`
	PaymentStatus *string `json:"paymentStatus"`
}

// toUpdate validates enum membership. The billing dashboard's legacy
// status "Paid" is read as a payment change.
func (req *UpdateOrderRequest) toUpdate() (store.OrderUpdate, error) {
	var upd store.OrderUpdate
	if req.Status != nil && *req.Status == string(models.PaymentPaid) && req.PaymentStatus == nil {
		paid := models.PaymentPaid
		upd.PaymentStatus = &paid
		return upd, nil
	}
	if req.Status != nil {
		s := models.OrderStatus(*req.Status)
		if !s.Valid() {
			return upd, fmt.Errorf("invalid status %q", *req.Status)
		}
		upd.Status = &s
	}
	if req.PaymentStatus != nil {
		p := models.PaymentStatus(*req.PaymentStatus)
		if !p.Valid() {
			return upd, fmt.Errorf("invalid paymentStatus %q", *req.PaymentStatus)
		}
		upd.PaymentStatus = &p
	}
	if upd.Status == nil && upd.PaymentStatus == nil {
		return upd, errors.New("status or paymentStatus is required")
	}
	return upd, nil
}

// UpdateOrder patches status and/or payment status. Any authenticated
// role may set any value unless StrictTransitions is on.
func (h *Handler) UpdateOrder(c *gin.Context) {
	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	upd, err := req.toUpdate()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	upd.ChangedBy = middleware.GetUsername(c)
	upd.Role = middleware.GetRole(c)

	var check func(*models.Order) error
	if h.opts.StrictTransitions {
		check = func(current *models.Order) error {
			if upd.Status != nil {
				if err := statemachine.CanTransition(current.Status, *upd.Status, upd.Role); err != nil {
					return err
				}
			}
			if upd.PaymentStatus != nil {
				return statemachine.CanSettle(current.PaymentStatus, *upd.PaymentStatus, upd.Role)
			}
			return nil
		}
	}

	order, err := h.orders.Update(c.Request.Context(), c.Param("id"), upd, check)
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	case errors.Is(err, statemachine.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "Invalid state transition",
			"reason": err.Error(),
		})
	case err != nil:
		internalError(c, "Failed to update order", err)
	default:
		c.JSON(http.StatusOK, order)
	}
}
