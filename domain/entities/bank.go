package entities

import "time"

// Bank is a tenant: a lottery bank owned by a banker user.
type Bank struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	OwnerID   int64     `db:"owner_id"` // banker user that owns this bank
	IsDeleted bool      `db:"is_deleted"`
	CreatedAt time.Time `db:"created_at"`
}

// Role of an authenticated actor, sourced from the external identity system.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleBanker Role = "banker"
	RoleSeller Role = "seller"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   int64
	Role Role
}

// CanAdministerBank reports whether the actor may run administrative
// operations (settlement, outcome declaration) for the given bank.
func (a Actor) CanAdministerBank(b *Bank) bool {
	if a.Role == RoleAdmin {
		return true
	}
	return a.Role == RoleBanker && b.OwnerID == a.ID
}
