package models

import "time"

// File is the metadata record for an uploaded blob. Filename is the
// on-disk name, OriginalName the user-supplied one, Filepath the storage
// location of the blob itself.
type File struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	Filepath     string    `json:"filepath"`
	Size         int64     `json:"size"`
	IsPublic     Flag      `json:"is_public"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// PublicFile is a File joined with its uploader's username at read time.
type PublicFile struct {
	File
	Username string `json:"username"`
}

// FileStats aggregates a user's files. All fields are derived, never
// stored.
type FileStats struct {
	FileCount   int   `json:"file_count"`
	TotalSize   int64 `json:"total_size"`
	PublicCount int   `json:"public_count"`
}
