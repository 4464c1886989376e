package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"studypilot/internal/client/api"
	"studypilot/internal/common"
)

// getLines is a test seam for the multi-line path prompt.
var getLines = GetLines

// File types the backend knows how to ingest.
var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".docx": {},
	".pptx": {},
	".txt":  {},
	".md":   {},
}

// Upload shows the current document inventory, collects up to
// api.MaxUploadFiles local paths, and ships them as one multipart batch.
// Oversized batches and unsupported file types are rejected before anything
// touches the network.
func (a *App) Upload(ctx context.Context) error {
	a.showInventory(ctx)

	paths, err := getLines(a.reader, fmt.Sprintf("Enter up to %d file paths, one per line", api.MaxUploadFiles), a.out)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Fprintln(a.out, "Nothing to upload.")
		return nil
	}
	if len(paths) > api.MaxUploadFiles {
		fmt.Fprintln(a.out, errorStyle.Render(fmt.Sprintf("Max %d files per upload batch", api.MaxUploadFiles)))
		return common.ErrTooManyFiles
	}

	files := make([]api.UploadFile, 0, len(paths))
	for _, p := range paths {
		ext := strings.ToLower(filepath.Ext(p))
		if _, ok := allowedExtensions[ext]; !ok {
			fmt.Fprintln(a.out, errorStyle.Render("Unsupported file type: "+p))
			return fmt.Errorf("unsupported file type %q", ext)
		}
		content, err := os.ReadFile(p)
		if err != nil {
			fmt.Fprintln(a.out, errorStyle.Render("Cannot read "+p+": "+err.Error()))
			return err
		}
		files = append(files, api.UploadFile{Name: filepath.Base(p), Content: content})
	}

	if err := a.api.UploadFiles(ctx, files); err != nil {
		fmt.Fprintln(a.out, errorStyle.Render(err.Error()))
		return err
	}

	fmt.Fprintln(a.out, successStyle.Render("Files uploaded successfully!"))
	a.showInventory(ctx)
	return nil
}

// showInventory prints the backend's document inventory. Fetch failures are
// reported but do not abort the surrounding flow, mirroring the dashboard
// treatment of the same endpoint.
func (a *App) showInventory(ctx context.Context) {
	status, err := a.api.Status(ctx)
	if err != nil {
		fmt.Fprintln(a.out, mutedStyle.Render("(inventory unavailable: "+err.Error()+")"))
		return
	}

	fmt.Fprintf(a.out, "Uploaded documents: %d\n", status.UploadedDocuments)
	for _, doc := range status.Documents {
		fmt.Fprintf(a.out, "  %s  %s\n", doc.Filename, mutedStyle.Render(doc.UploadedAt))
	}
}
