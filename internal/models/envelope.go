package models

import "time"

// Envelope is the versioned export file layout.
type Envelope struct {
	Version    string    `json:"version"`
	ExportDate time.Time `json:"exportDate"`
	Diaries    []Entry   `json:"diaries"`
}
