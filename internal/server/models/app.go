package models

import "time"

// App is a downloadable application package published by an admin.
type App struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Filename    string    `json:"filename"`
	Filepath    string    `json:"filepath"`
	Version     string    `json:"version"`
	Size        int64     `json:"size"`
	Downloads   int64     `json:"downloads"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
