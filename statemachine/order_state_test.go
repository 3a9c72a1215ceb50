package statemachine

import (
	"errors"
	"testing"

	"table-ordering-api/models"
)

func TestCanTransition_Kitchen(t *testing.T) {
	cases := []struct {
		from, to models.OrderStatus
		ok       bool
	}{
		{models.StatusPending, models.StatusPreparing, true},
		{models.StatusConfirmed, models.StatusPreparing, true},
		{models.StatusPreparing, models.StatusReady, true},
		{models.StatusPending, models.StatusReady, false},
		{models.StatusReady, models.StatusDelivered, false},
		{models.StatusPending, models.StatusCancelled, false},
		{models.StatusPreparing, models.StatusPreparing, true},
	}
	for _, tc := range cases {
		err := CanTransition(tc.from, tc.to, models.RoleKitchen)
		if tc.ok && err != nil {
			t.Errorf("%s → %s: unexpected error %v", tc.from, tc.to, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("%s → %s: expected ErrInvalidTransition, got %v", tc.from, tc.to, err)
		}
	}
}

func TestCanTransition_AdminUnrestricted(t *testing.T) {
	for _, from := range models.OrderStatuses {
		for _, to := range models.OrderStatuses {
			if err := CanTransition(from, to, models.RoleAdmin); err != nil {
				t.Errorf("admin %s → %s: %v", from, to, err)
			}
		}
	}
}

func TestCanTransition_UnknownStatus(t *testing.T) {
	err := CanTransition(models.StatusPending, "Paid", models.RoleAdmin)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestCanTransition_BillingCannotMoveStatus(t *testing.T) {
	if err := CanTransition(models.StatusReady, models.StatusDelivered, models.RoleBilling); err == nil {
		t.Fatal("billing should not change order status")
	}
}

func TestCanSettle(t *testing.T) {
	if err := CanSettle(models.PaymentPending, models.PaymentPaid, models.RoleBilling); err != nil {
		t.Errorf("billing should settle: %v", err)
	}
	if err := CanSettle(models.PaymentPending, models.PaymentPaid, models.RoleKitchen); err == nil {
		t.Error("kitchen should not settle")
	}
	if err := CanSettle(models.PaymentPaid, models.PaymentPending, models.RoleBilling); err == nil {
		t.Error("billing should not reopen a paid bill")
	}
	if err := CanSettle(models.PaymentPaid, models.PaymentPending, models.RoleAdmin); err != nil {
		t.Errorf("admin should reopen: %v", err)
	}
}

func TestVisible(t *testing.T) {
	if !Visible(models.RoleKitchen, models.StatusConfirmed) {
		t.Error("kitchen should see Confirmed")
	}
	if Visible(models.RoleKitchen, models.StatusReady) {
		t.Error("kitchen should not see Ready")
	}
	if !Visible(models.RoleBilling, models.StatusDelivered) {
		t.Error("billing should see Delivered")
	}
	if Visible(models.RoleBilling, models.StatusPending) {
		t.Error("billing should not see Pending")
	}
	for _, s := range models.OrderStatuses {
		if !Visible(models.RoleAdmin, s) {
			t.Errorf("admin should see %s", s)
		}
	}
}

func TestActions(t *testing.T) {
	order := &models.Order{Status: models.StatusPending, PaymentStatus: models.PaymentPending}
	got := Actions(models.RoleKitchen, order)
	if len(got) != 1 || got[0] != (Action{Field: "status", To: "Preparing"}) {
		t.Errorf("kitchen actions for Pending: %+v", got)
	}

	order.Status = models.StatusReady
	got = Actions(models.RoleBilling, order)
	if len(got) != 1 || got[0] != (Action{Field: "paymentStatus", To: "Paid"}) {
		t.Errorf("billing actions for Ready: %+v", got)
	}

	order.PaymentStatus = models.PaymentPaid
	if got := Actions(models.RoleBilling, order); len(got) != 0 {
		t.Errorf("billing actions after paid: %+v", got)
	}

	if got := Actions(models.RoleAdmin, order); len(got) != len(models.OrderStatuses)-1 {
		t.Errorf("admin actions: %+v", got)
	}
}

func TestRefreshInterval(t *testing.T) {
	if RefreshInterval(models.RoleKitchen).Seconds() != 5 {
		t.Error("kitchen polls every 5s")
	}
	if RefreshInterval(models.RoleBilling).Seconds() != 10 {
		t.Error("billing polls every 10s")
	}
}
