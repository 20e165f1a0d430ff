package enums

import "fmt"

// ActorRole identifies which side of the ledger a token belongs to.
type ActorRole string

const (
	ActorRoleVendor   ActorRole = "vendor"
	ActorRoleCustomer ActorRole = "customer"
)

// IsValid checks whether the given role matches the canonical enum.
func (r ActorRole) IsValid() bool {
	return r == ActorRoleVendor || r == ActorRoleCustomer
}

// ParseActorRole converts raw strings into ActorRole.
func ParseActorRole(value string) (ActorRole, error) {
	switch ActorRole(value) {
	case ActorRoleVendor:
		return ActorRoleVendor, nil
	case ActorRoleCustomer:
		return ActorRoleCustomer, nil
	}
	return "", fmt.Errorf("invalid actor role %q", value)
}
