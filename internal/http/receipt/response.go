package receipt

type processResponse struct {
	ID string `json:"id"`
}

type pointsResponse struct {
	Points int64 `json:"points"`
}
