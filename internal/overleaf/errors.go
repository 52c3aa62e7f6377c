// Package overleaf provides a client for the Overleaf collaborative editor,
// authenticated with the session cookie from a local browser login.
package overleaf

import "fmt"

// AuthError indicates that no usable Overleaf session could be established.
type AuthError struct {
	Message string
	Cause   error
}

func (e *AuthError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("overleaf auth error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("overleaf auth error: %s", e.Message)
}

func (e *AuthError) Unwrap() error {
	return e.Cause
}

// RequestError represents a failed HTTP exchange with Overleaf.
type RequestError struct {
	URL        string
	Message    string
	StatusCode int
	Cause      error
}

func (e *RequestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("overleaf request error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("overleaf request error for %s: %s", e.URL, e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// ProjectNotFoundError indicates that no project with the requested name
// exists in the account's project list.
type ProjectNotFoundError struct {
	Name string
}

func (e *ProjectNotFoundError) Error() string {
	return fmt.Sprintf("project %q not found", e.Name)
}

// FileNotFoundError indicates that the requested path is absent from the
// project's file tree.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("file %q not found in project", e.Path)
}
