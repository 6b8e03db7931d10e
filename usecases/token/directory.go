package token

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/gmkhealth/verdict-backend/models"
)

// PasswordDirectory holds the static login secrets. Deployments are small
// enough (three cohorts, six evaluators, one admin) that env-provided tables
// stand in for a user store. An empty secret disables the matching login.
type PasswordDirectory struct {
	GroupPasswords     map[models.Group]string
	EvaluatorPasswords map[string]string
	AdminPassword      string
}

// ParsePasswordList parses a "name=secret" comma list, the format of the
// GROUP_PASSWORDS and EVALUATOR_PASSWORDS variables.
func ParsePasswordList(raw string) (map[string]string, error) {
	out := make(map[string]string)
	if strings.TrimSpace(raw) == "" {
		return out, nil
	}
	for _, entry := range strings.Split(raw, ",") {
		name, secret, found := strings.Cut(entry, "=")
		if !found {
			return nil, errors.Wrap(models.BadParameterError,
				fmt.Sprintf("password entry %q is not name=secret", entry))
		}
		out[strings.TrimSpace(name)] = strings.TrimSpace(secret)
	}
	return out, nil
}

func ParseGroupPasswords(raw string) (map[models.Group]string, error) {
	byName, err := ParsePasswordList(raw)
	if err != nil {
		return nil, err
	}
	out := make(map[models.Group]string, len(byName))
	for name, secret := range byName {
		group, err := models.GroupFromString(name)
		if err != nil {
			return nil, err
		}
		out[group] = secret
	}
	return out, nil
}

func NewPasswordDirectory(groupList, evaluatorList, adminPassword string) (PasswordDirectory, error) {
	groups, err := ParseGroupPasswords(groupList)
	if err != nil {
		return PasswordDirectory{}, err
	}
	evaluators, err := ParsePasswordList(evaluatorList)
	if err != nil {
		return PasswordDirectory{}, err
	}
	return PasswordDirectory{
		GroupPasswords:     groups,
		EvaluatorPasswords: evaluators,
		AdminPassword:      adminPassword,
	}, nil
}
