package overleaf

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// Project is one entry from the account's project dashboard.
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// projectsBlob mirrors the JSON Overleaf embeds in the dashboard page.
type projectsBlob struct {
	Projects []Project `json:"projects"`
}

// ListProjects fetches the project dashboard and returns the projects in
// the order Overleaf lists them. Every call re-fetches; nothing is cached.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	return c.fetchDashboard(ctx)
}

// FindProject returns the first project whose name exactly equals name,
// along with the total number of exact matches so callers can warn when
// the name is ambiguous. Matching is case-sensitive with no normalization.
func (c *Client) FindProject(ctx context.Context, name string) (Project, int, error) {
	projects, err := c.ListProjects(ctx)
	if err != nil {
		return Project{}, 0, err
	}

	var first Project
	matches := 0
	for _, p := range projects {
		if p.Name == name {
			if matches == 0 {
				first = p
			}
			matches++
		}
	}
	if matches == 0 {
		return Project{}, 0, &ProjectNotFoundError{Name: name}
	}
	return first, matches, nil
}

// fetchDashboard loads /project and extracts the prefetched projects blob
// Overleaf embeds in a meta tag.
func (c *Client) fetchDashboard(ctx context.Context) ([]Project, error) {
	resp, err := c.get(ctx, "/project")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &RequestError{URL: c.host + "/project", Message: "failed to parse dashboard HTML", Cause: err}
	}

	content, exists := doc.Find(`meta[name="ol-prefetchedProjectsBlob"]`).Attr("content")
	if !exists {
		return nil, &AuthError{Message: "dashboard page carries no project data (not logged in?)"}
	}

	var blob projectsBlob
	if err := json.Unmarshal([]byte(content), &blob); err != nil {
		return nil, &RequestError{
			URL:     c.host + "/project",
			Message: "failed to decode projects blob",
			Cause:   err,
		}
	}
	return blob.Projects, nil
}

// metaContent pulls the content attribute of a named meta tag out of an
// Overleaf page, erroring when the tag is absent.
func metaContent(doc *goquery.Document, name, pageURL string) (string, error) {
	content, exists := doc.Find(fmt.Sprintf(`meta[name=%q]`, name)).Attr("content")
	if !exists {
		return "", &RequestError{URL: pageURL, Message: fmt.Sprintf("meta tag %s not found", name)}
	}
	return content, nil
}
