package dto

// ScreenTransitionBody asks whether the browser may move between two named
// screens of the adjudication tool.
type ScreenTransitionBody struct {
	From string `json:"from" binding:"required,oneof=login queue review dashboard"`
	To   string `json:"to" binding:"required,oneof=login queue review dashboard"`
}

type ScreenTransitionResponse struct {
	Screen string `json:"screen"`
}
