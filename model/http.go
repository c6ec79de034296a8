package model

// MessageRequestBody carries one raw device message, e.g. [144, 60, 100].
type MessageRequestBody struct {
	Data []int `json:"data"`
}

// SettingsRequestBody is a partial settings update. Nil fields keep their
// current value.
type SettingsRequestBody struct {
	Mode        *string `json:"mode"`
	Difficulty  *string `json:"difficulty"`
	KeyRoot     *string `json:"key_root"`
	KeyQuality  *string `json:"key_quality"`
	ChordPool   *string `json:"chord_pool"`
	AutoAdvance *bool   `json:"auto_advance"`
}

type InputRequestBody struct {
	Enabled bool     `json:"enabled"`
	Devices []string `json:"devices"`
	Reason  string   `json:"reason"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
