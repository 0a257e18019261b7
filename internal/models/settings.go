package models

// Settings holds per-installation application settings, persisted in the
// settings key/value table.
type Settings struct {
	Language  string `json:"language"`
	InstallID string `json:"install_id"`
}
