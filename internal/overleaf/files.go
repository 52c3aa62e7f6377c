package overleaf

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ProjectIO provides read and write access to files inside one project.
type ProjectIO struct {
	client    *Client
	projectID string
}

// OpenProject scopes file access to the project with the given ID.
func (c *Client) OpenProject(projectID string) *ProjectIO {
	return &ProjectIO{client: c, projectID: projectID}
}

// ProjectID returns the ID of the project this handle is bound to.
func (p *ProjectIO) ProjectID() string {
	return p.projectID
}

// ReadFile downloads the project archive and returns the content of the
// entry at filePath as text.
func (p *ProjectIO) ReadFile(ctx context.Context, filePath string) (string, error) {
	resp, err := p.client.get(ctx, fmt.Sprintf("/project/%s/download/zip", p.projectID))
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	archive, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &RequestError{
			URL:     p.client.host + "/project/" + p.projectID + "/download/zip",
			Message: "failed to read project archive",
			Cause:   err,
		}
	}

	reader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return "", &RequestError{
			URL:     p.client.host + "/project/" + p.projectID + "/download/zip",
			Message: "failed to open project archive",
			Cause:   err,
		}
	}

	want := strings.TrimPrefix(filePath, "./")
	for _, entry := range reader.File {
		if strings.TrimPrefix(entry.Name, "./") != want {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open archive entry %s: %w", entry.Name, err)
		}
		defer func() { _ = rc.Close() }()

		content, err := io.ReadAll(rc)
		if err != nil {
			return "", fmt.Errorf("failed to read archive entry %s: %w", entry.Name, err)
		}
		return string(content), nil
	}
	return "", &FileNotFoundError{Path: filePath}
}

// WriteFile replaces the file at filePath with content. Overleaf's upload
// endpoint overwrites an existing file of the same name in place, so every
// save is a whole-document overwrite.
func (p *ProjectIO) WriteFile(ctx context.Context, filePath, content string) error {
	csrf, folderID, err := p.uploadTarget(ctx)
	if err != nil {
		return err
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	relativePath := "null"
	if strings.Contains(filePath, "/") {
		relativePath = filePath
	}
	if err := writer.WriteField("relativePath", relativePath); err != nil {
		return fmt.Errorf("failed to build upload form: %w", err)
	}
	part, err := writer.CreateFormFile("qqfile", path.Base(filePath))
	if err != nil {
		return fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.WriteString(part, content); err != nil {
		return fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to build upload form: %w", err)
	}

	uploadURL := fmt.Sprintf("%s/project/%s/upload?folder_id=%s", p.client.host, p.projectID, folderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, &body)
	if err != nil {
		return &RequestError{URL: uploadURL, Message: "failed to create upload request", Cause: err}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-CSRF-TOKEN", csrf)
	if p.client.session != nil {
		req.AddCookie(p.client.session)
	}

	resp, err := p.client.http.Do(req)
	if err != nil {
		return &RequestError{URL: uploadURL, Message: "upload request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &RequestError{
			URL:        uploadURL,
			Message:    fmt.Sprintf("HTTP status %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}

	var result struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return &RequestError{URL: uploadURL, Message: "failed to decode upload response", Cause: err}
	}
	if !result.Success {
		return &RequestError{URL: uploadURL, Message: "upload rejected by Overleaf"}
	}
	return nil
}

// uploadTarget loads the project editor page and extracts the CSRF token
// and root folder ID the upload endpoint requires.
func (p *ProjectIO) uploadTarget(ctx context.Context) (csrf, folderID string, err error) {
	pageURL := p.client.host + "/project/" + p.projectID

	resp, err := p.client.get(ctx, "/project/"+p.projectID)
	if err != nil {
		return "", "", err
	}
	defer func() { _ = resp.Body.Close() }()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", "", &RequestError{URL: pageURL, Message: "failed to parse project page", Cause: err}
	}

	csrf, err = metaContent(doc, "ol-csrfToken", pageURL)
	if err != nil {
		return "", "", err
	}

	blob, err := metaContent(doc, "ol-project", pageURL)
	if err != nil {
		return "", "", err
	}
	var project struct {
		RootFolder []struct {
			ID string `json:"_id"`
		} `json:"rootFolder"`
	}
	if err := json.Unmarshal([]byte(blob), &project); err != nil {
		return "", "", &RequestError{URL: pageURL, Message: "failed to decode project blob", Cause: err}
	}
	if len(project.RootFolder) == 0 {
		return "", "", &RequestError{URL: pageURL, Message: "project blob has no root folder"}
	}
	return csrf, project.RootFolder[0].ID, nil
}
