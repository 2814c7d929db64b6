package request

// ExecuteCommandRequest is the request body for running a player command
type ExecuteCommandRequest struct {
	Command string `json:"command"`
}

// UpdatePreferencesRequest is the request body for changing a player's
// preferences. Omitted fields are left unchanged.
type UpdatePreferencesRequest struct {
	Mode       string `json:"mode,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
}
