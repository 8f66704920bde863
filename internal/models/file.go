package models

// ListDirRequest represents the request to list a directory
type ListDirRequest struct {
	Path string `json:"path" form:"path"`
}

// HomeDirResponse represents the resolved home directory
type HomeDirResponse struct {
	Path string `json:"path"`
}

// ErrorResponse is returned for every failed operation. Error carries the
// human-readable reason and Kind its classification.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}
