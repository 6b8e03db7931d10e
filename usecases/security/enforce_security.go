package security

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/gmkhealth/verdict-backend/models"
)

type EnforceSecurity interface {
	Permission(permission models.Permission) error
	ReadGroup(group models.Group) error
}

type EnforceSecurityImpl struct {
	Credentials models.Credentials
}

func (e *EnforceSecurityImpl) Permission(permission models.Permission) error {
	if !e.Credentials.Role.HasPermission(permission) {
		return errors.Wrap(models.ForbiddenError,
			fmt.Sprintf("missing permission %s", permission.String()))
	}
	return nil
}

// ReadGroup scopes group-owned data to the caller's cohort. The review admin
// carries no group and passes for every cohort.
func (e *EnforceSecurityImpl) ReadGroup(group models.Group) error {
	if e.Credentials.Group == nil {
		return nil
	}
	if *e.Credentials.Group != group {
		return errors.Wrap(models.ForbiddenError,
			fmt.Sprintf("credentials are scoped to %s", e.Credentials.Group.String()))
	}
	return nil
}
