package calendarsync

type StatusResponse struct {
	Enabled    bool   `json:"enabled"`
	CalendarID string `json:"calendar_id,omitempty"`
	Unsynced   int    `json:"unsynced_requests"`
}

type SyncResult struct {
	Synced int      `json:"synced"`
	Failed int      `json:"failed"`
	Errors []string `json:"errors,omitempty"`
}
