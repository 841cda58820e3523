package domain

import "github.com/google/uuid"

// Snippet is one saved code snippet in the user's vault. The server
// stores snippets opaquely inside the state blob; search and folder
// navigation happen client-side.
type Snippet struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Language string   `json:"language"`
	Code     string   `json:"code"`
	Tags     []string `json:"tags,omitempty"`
	Notes    string   `json:"notes,omitempty"`
	FolderID string   `json:"folderId,omitempty"`
}

// NewSnippet assigns a fresh ID to a snippet.
func NewSnippet(title, language, code string) Snippet {
	return Snippet{
		ID:       uuid.NewString(),
		Title:    title,
		Language: language,
		Code:     code,
	}
}
