package overleaf

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const projectPageHTML = `<html><head>
<meta name="ol-csrfToken" content="csrf-123">
<meta name="ol-project" content='{"rootFolder":[{"_id":"root-1"}]}'>
</head><body></body></html>`

func projectZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		entry, err := w.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestReadFile(t *testing.T) {
	archive := projectZip(t, map[string]string{
		"resume.tex": "\\documentclass{article} OLD",
		"refs.bib":   "@article{x}",
	})
	mux := http.NewServeMux()
	mux.HandleFunc("/project/proj1/download/zip", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(archive)
	})

	client := newTestClient(t, mux)
	pio := client.OpenProject("proj1")

	content, err := pio.ReadFile(context.Background(), "resume.tex")
	require.NoError(t, err)
	assert.Equal(t, "\\documentclass{article} OLD", content)
}

func TestReadFile_MissingEntry(t *testing.T) {
	archive := projectZip(t, map[string]string{"main.tex": "x"})
	mux := http.NewServeMux()
	mux.HandleFunc("/project/proj1/download/zip", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(archive)
	})

	client := newTestClient(t, mux)
	_, err := client.OpenProject("proj1").ReadFile(context.Background(), "resume.tex")

	var notFound *FileNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "resume.tex", notFound.Path)
}

func TestReadFile_NestedPath(t *testing.T) {
	archive := projectZip(t, map[string]string{"./tex/resume.tex": "nested"})
	mux := http.NewServeMux()
	mux.HandleFunc("/project/proj1/download/zip", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(archive)
	})

	client := newTestClient(t, mux)
	content, err := client.OpenProject("proj1").ReadFile(context.Background(), "tex/resume.tex")
	require.NoError(t, err)
	assert.Equal(t, "nested", content)
}

func TestWriteFile(t *testing.T) {
	var (
		gotCSRF     string
		gotFolderID string
		gotFilename string
		gotContent  string
	)
	mux := http.NewServeMux()
	mux.HandleFunc("/project/proj1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(projectPageHTML))
	})
	mux.HandleFunc("/project/proj1/upload", func(w http.ResponseWriter, r *http.Request) {
		gotCSRF = r.Header.Get("X-CSRF-TOKEN")
		gotFolderID = r.URL.Query().Get("folder_id")

		file, header, err := r.FormFile("qqfile")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()
		gotFilename = header.Filename
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		gotContent = string(data)

		_, _ = w.Write([]byte(`{"success":true}`))
	})

	client := newTestClient(t, mux)
	err := client.OpenProject("proj1").WriteFile(context.Background(), "resume.tex", "\\documentclass{article} NEW")
	require.NoError(t, err)

	assert.Equal(t, "csrf-123", gotCSRF)
	assert.Equal(t, "root-1", gotFolderID)
	assert.Equal(t, "resume.tex", gotFilename)
	assert.Equal(t, "\\documentclass{article} NEW", gotContent)
}

func TestWriteFile_UploadRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/project/proj1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(projectPageHTML))
	})
	mux.HandleFunc("/project/proj1/upload", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false}`))
	})

	client := newTestClient(t, mux)
	err := client.OpenProject("proj1").WriteFile(context.Background(), "resume.tex", "NEW")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upload rejected")
}

func TestWriteFile_MissingCSRFMeta(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/project/proj1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head></head></html>`))
	})

	client := newTestClient(t, mux)
	err := client.OpenProject("proj1").WriteFile(context.Background(), "resume.tex", "NEW")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ol-csrfToken")
}
