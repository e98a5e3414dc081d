package settings

type UpsertSettingRequest struct {
	Value string `json:"value" binding:"required"`
}

type SettingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
