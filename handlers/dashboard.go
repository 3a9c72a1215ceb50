package handlers

import (
	"net/http"

	"table-ordering-api/middleware"
	"table-ordering-api/models"
	"table-ordering-api/statemachine"

	"github.com/gin-gonic/gin"
)

type DashboardOrder struct {
	Order   models.Order          `json:"order"`
	Actions []statemachine.Action `json:"actions"`
}

// GetDashboard is what a role's dashboard polls: the orders it shows,
// the buttons to render for each, and how long to wait before polling
// again.
func (h *Handler) GetDashboard(c *gin.Context) {
	role := middleware.GetRole(c)
	orders, err := h.orders.List(c.Request.Context(), statemachine.VisibleStatuses(role)...)
	if err != nil {
		internalError(c, "Failed to fetch orders", err)
		return
	}

	entries := make([]DashboardOrder, 0, len(orders))
	summary := map[string]int{}
	for i := range orders {
		summary[string(orders[i].Status)]++
		entries = append(entries, DashboardOrder{
			Order:   orders[i],
			Actions: statemachine.Actions(role, &orders[i]),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"role":                   role,
		"refreshIntervalSeconds": int(statemachine.RefreshInterval(role).Seconds()),
		"orderSummary":           summary,
		"orders":                 entries,
	})
}

// GetStateMachineInfo documents the workflow for the dashboards
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	views := gin.H{}
	for _, role := range models.Roles {
		views[string(role)] = statemachine.VisibleStatuses(role)
	}
	c.JSON(http.StatusOK, gin.H{
		"statuses":           models.OrderStatuses,
		"paymentStatuses":    []models.PaymentStatus{models.PaymentPending, models.PaymentPaid},
		"terminalStatuses":   []models.OrderStatus{models.StatusDelivered, models.StatusCancelled},
		"transitions":        statemachine.GetAllTransitions(),
		"paymentTransitions": statemachine.GetPaymentTransitions(),
		"views":              views,
		"adminUnrestricted":  true,
		"enforcedServerSide": h.opts.StrictTransitions,
	})
}
