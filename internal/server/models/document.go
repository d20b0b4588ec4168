package models

import "encoding/json"

// Collection names the four record sequences of the document.
type Collection string

const (
	CollectionUsers   Collection = "users"
	CollectionFiles   Collection = "files"
	CollectionApps    Collection = "apps"
	CollectionFolders Collection = "folders"
)

// Document is the whole persisted dataset. Folders is a reserved
// collection no operation touches; it is carried as raw JSON so existing
// documents round-trip untouched.
type Document struct {
	Users   []User            `json:"users"`
	Files   []File            `json:"files"`
	Apps    []App             `json:"apps"`
	Folders []json.RawMessage `json:"folders"`
}

// NewDocument returns a document with four empty collections.
func NewDocument() *Document {
	return &Document{
		Users:   []User{},
		Files:   []File{},
		Apps:    []App{},
		Folders: []json.RawMessage{},
	}
}

// NextID returns 1 for an empty collection, otherwise max(id)+1. The value
// is re-derived from current contents on every call, not a persistent
// sequence: deleting the record holding the current maximum frees that ID
// for reuse by the next create.
func (d *Document) NextID(c Collection) int64 {
	var max int64
	switch c {
	case CollectionUsers:
		for i := range d.Users {
			if d.Users[i].ID > max {
				max = d.Users[i].ID
			}
		}
	case CollectionFiles:
		for i := range d.Files {
			if d.Files[i].ID > max {
				max = d.Files[i].ID
			}
		}
	case CollectionApps:
		for i := range d.Apps {
			if d.Apps[i].ID > max {
				max = d.Apps[i].ID
			}
		}
	}
	return max + 1
}
