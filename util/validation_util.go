// util/validation_util.go

package util

import (
	"fmt"

	"github.com/dev-mohitbeniwal/warden/model"
)

type ValidationUtil struct{}

func NewValidationUtil() *ValidationUtil {
	return &ValidationUtil{}
}

// ValidateIdentity checks that a decoded identity blob is internally
// consistent before it is cached or handed to a caller.
func (v *ValidationUtil) ValidateIdentity(principal *model.Principal) error {
	if principal.Account == nil {
		return fmt.Errorf("identity has no account")
	}
	if principal.Account.UUID == "" {
		return fmt.Errorf("account uuid cannot be empty")
	}
	if principal.Account.Login == "" {
		return fmt.Errorf("account login cannot be empty")
	}
	if user := principal.User; user != nil {
		if user.UUID == "" {
			return fmt.Errorf("user uuid cannot be empty")
		}
		if user.Login == "" {
			return fmt.Errorf("user login cannot be empty")
		}
		if user.Account == "" {
			return fmt.Errorf("user must reference its owning account")
		}
	}
	for uuid, role := range principal.Roles {
		if role.UUID != "" && role.UUID != uuid {
			return fmt.Errorf("role %s is keyed under a different uuid", role.UUID)
		}
		if role.Name == "" {
			return fmt.Errorf("role %s must have a name", uuid)
		}
	}
	return nil
}

// ValidateResource checks that a resource descriptor can participate in an
// authorization.
func (v *ValidationUtil) ValidateResource(resource *model.Resource) error {
	if resource == nil {
		return fmt.Errorf("resource cannot be nil")
	}
	if resource.Owner == nil || resource.Owner.Account == nil {
		return fmt.Errorf("resource must have an owner account")
	}
	return nil
}
