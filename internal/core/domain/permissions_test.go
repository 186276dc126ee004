package domain

import (
	"encoding/json"
	"testing"
)

func TestDefaultPermissionsByRole(t *testing.T) {
	admin := DefaultPermissions(RoleAdmin)
	if !admin.Manage.Staff {
		t.Error("admin must manage staff")
	}
	if admin.Billing.MaxDiscountPercent != 100 {
		t.Errorf("admin max discount = %v, want 100", admin.Billing.MaxDiscountPercent)
	}

	manager := DefaultPermissions(RoleManager)
	if manager.Manage.Staff {
		t.Error("manager must not manage staff")
	}
	if !manager.Billing.BillDiscount {
		t.Error("manager must apply bill discounts")
	}
	if manager.Billing.MaxDiscountPercent != 25 {
		t.Errorf("manager max discount = %v, want 25", manager.Billing.MaxDiscountPercent)
	}

	staff := DefaultPermissions(RoleStaff)
	if staff.Billing.BillDiscount {
		t.Error("staff must not apply bill discounts")
	}
	if !staff.Orders.Create {
		t.Error("staff must create orders")
	}
	if staff.Sessions.Cancel {
		t.Error("staff must not cancel sessions")
	}

	user := DefaultPermissions(RoleUser)
	if user.Orders.Create || user.Billing.AcceptPayment || user.Manage.Reports {
		t.Error("customer role must carry no capabilities")
	}
}

func TestPermissionsRoundTrip(t *testing.T) {
	original := DefaultPermissions(RoleManager)

	value, err := original.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}

	var restored Permissions
	if err := restored.Scan(value); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if restored != original {
		t.Errorf("round trip mismatch: got %+v, want %+v", restored, original)
	}

	// MySQL drivers may hand back a string instead of []byte.
	raw, _ := json.Marshal(original)
	var fromString Permissions
	if err := fromString.Scan(string(raw)); err != nil {
		t.Fatalf("scan string: %v", err)
	}
	if fromString != original {
		t.Error("string scan mismatch")
	}
}

func TestPermissionsScanEmpty(t *testing.T) {
	var p Permissions
	if err := p.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if p != (Permissions{}) {
		t.Error("nil column must scan to zero bundle")
	}
}

func TestParseRole(t *testing.T) {
	if _, ok := ParseRole("Manager"); !ok {
		t.Error("Manager must parse")
	}
	if _, ok := ParseRole("Superuser"); ok {
		t.Error("unknown role must not parse")
	}
	if !RoleStaff.IsStaff() {
		t.Error("Staff is a staff role")
	}
	if RoleUser.IsStaff() {
		t.Error("User is not a staff role")
	}
}
