package dto

import (
	"github.com/gmkhealth/verdict-backend/models"
	"github.com/gmkhealth/verdict-backend/pure_utils"
)

type Identity struct {
	Actor string `json:"actor"`
}

type Credentials struct {
	Role          string   `json:"role"`
	Group         string   `json:"group,omitempty"`
	ActorIdentity Identity `json:"actor_identity"`
	Permissions   []string `json:"permissions"`
}

func AdaptCredentialDto(creds models.Credentials) Credentials {
	permissions := pure_utils.Map(creds.Role.Permissions(), func(p models.Permission) string { return p.String() })

	out := Credentials{
		Role: creds.Role.String(),
		ActorIdentity: Identity{
			Actor: creds.ActorIdentity.Actor,
		},
		Permissions: permissions,
	}
	if creds.Group != nil {
		out.Group = creds.Group.Letter()
	}
	return out
}

func AdaptCredential(dto Credentials) models.Credentials {
	creds := models.Credentials{
		Role: models.RoleFromString(dto.Role),
		ActorIdentity: models.Identity{
			Actor: dto.ActorIdentity.Actor,
		},
	}
	if group, err := models.GroupFromString(dto.Group); dto.Group != "" && err == nil {
		creds.Group = &group
	}
	return creds
}
