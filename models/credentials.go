package models

// Identity names the logged-in actor: a whole evaluator group sharing one
// adjudication login, a single evaluator, or the review admin.
type Identity struct {
	// Actor is the login label: "Group A", "Evaluator 3" or "admin".
	Actor string
}

type Credentials struct {
	ActorIdentity Identity
	Role          Role
	// Group scopes adjudicators and evaluators to their cohort. Nil for the
	// review admin, who may act on any group.
	Group *Group
}

func NewGroupCredentials(group Group) Credentials {
	g := group
	return Credentials{
		ActorIdentity: Identity{Actor: group.String()},
		Role:          ADJUDICATOR,
		Group:         &g,
	}
}

func NewEvaluatorCredentials(evaluator string, group Group) Credentials {
	g := group
	return Credentials{
		ActorIdentity: Identity{Actor: evaluator},
		Role:          EVALUATOR,
		Group:         &g,
	}
}

func NewAdminCredentials() Credentials {
	return Credentials{
		ActorIdentity: Identity{Actor: "admin"},
		Role:          REVIEW_ADMIN,
	}
}
