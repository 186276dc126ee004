package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Permissions is the capability bundle attached to a user at creation
// time. It is assigned from the role once and stored with the user; it is
// not re-derived on later requests, so changing a role's defaults does not
// retroactively change existing users.
type Permissions struct {
	Orders   OrderPermissions   `json:"orders"`
	Sessions SessionPermissions `json:"sessions"`
	Billing  BillingPermissions `json:"billing"`
	Manage   ManagePermissions  `json:"manage"`
}

// OrderPermissions govern the order pipeline
type OrderPermissions struct {
	Create       bool `json:"create"`
	UpdateStatus bool `json:"update_status"`
	Cancel       bool `json:"cancel"`
}

// SessionPermissions govern the table session lifecycle
type SessionPermissions struct {
	Start  bool `json:"start"`
	End    bool `json:"end"`
	Cancel bool `json:"cancel"`
}

// BillingPermissions govern discounts and payment capture
type BillingPermissions struct {
	ItemDiscount       bool    `json:"item_discount"`
	BillDiscount       bool    `json:"bill_discount"`
	MaxDiscountPercent float64 `json:"max_discount_percent"`
	AcceptPayment      bool    `json:"accept_payment"`
}

// ManagePermissions govern registry administration
type ManagePermissions struct {
	Staff   bool `json:"staff"`
	Menu    bool `json:"menu"`
	Tables  bool `json:"tables"`
	Devices bool `json:"devices"`
	Reports bool `json:"reports"`
}

// DefaultPermissions maps a role to its permission bundle. This is the
// single source of truth: registration and staff creation both call it.
func DefaultPermissions(role Role) Permissions {
	switch role {
	case RoleAdmin:
		return Permissions{
			Orders:   OrderPermissions{Create: true, UpdateStatus: true, Cancel: true},
			Sessions: SessionPermissions{Start: true, End: true, Cancel: true},
			Billing: BillingPermissions{
				ItemDiscount:       true,
				BillDiscount:       true,
				MaxDiscountPercent: 100,
				AcceptPayment:      true,
			},
			Manage: ManagePermissions{Staff: true, Menu: true, Tables: true, Devices: true, Reports: true},
		}
	case RoleManager:
		return Permissions{
			Orders:   OrderPermissions{Create: true, UpdateStatus: true, Cancel: true},
			Sessions: SessionPermissions{Start: true, End: true, Cancel: true},
			Billing: BillingPermissions{
				ItemDiscount:       true,
				BillDiscount:       true,
				MaxDiscountPercent: 25,
				AcceptPayment:      true,
			},
			Manage: ManagePermissions{Menu: true, Tables: true, Devices: true, Reports: true},
		}
	case RoleStaff:
		return Permissions{
			Orders:   OrderPermissions{Create: true, UpdateStatus: true},
			Sessions: SessionPermissions{Start: true, End: true},
			Billing: BillingPermissions{
				ItemDiscount:       true,
				MaxDiscountPercent: 5,
				AcceptPayment:      true,
			},
		}
	default:
		return Permissions{}
	}
}

// Value implements driver.Valuer so the bundle persists as a JSON column
func (p Permissions) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner
func (p *Permissions) Scan(value interface{}) error {
	if value == nil {
		*p = Permissions{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("permissions: unsupported column type %T", value)
	}
	if len(raw) == 0 {
		*p = Permissions{}
		return nil
	}
	return json.Unmarshal(raw, p)
}
