// Package extract converts uploaded documents (plain text or code,
// Jupyter notebooks, PDFs) into plain-text content for the embedding
// pipeline. Extraction failures are logged and yield empty content;
// they never abort a directory run.
package extract

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/codebuddy/codebuddy-go/internal/logger"

	"github.com/ledongthuc/pdf"
)

// Document is one extracted source file.
type Document struct {
	Filename string
	Content  string
	Type     string
}

var textExtensions = map[string]bool{
	".txt": true, ".py": true, ".js": true, ".go": true, ".m": true,
}

// Directory walks root and extracts every supported file. Unsupported
// files are skipped; unreadable files are logged and skipped.
func Directory(root string) ([]Document, error) {
	var documents []Document
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		var content, docType string
		switch ext := strings.ToLower(filepath.Ext(path)); {
		case ext == ".pdf":
			content, docType = PDF(path), "pdf"
		case ext == ".ipynb":
			content, docType = Notebook(path), "ipynb"
		case textExtensions[ext]:
			content, docType = Text(path), "text"
		default:
			return nil
		}
		if content == "" {
			return nil
		}
		documents = append(documents, Document{
			Filename: d.Name(),
			Content:  content,
			Type:     docType,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return documents, nil
}

// Text reads a plain text or code file.
func Text(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.L.Error("failed to read text file", "path", path, "error", err)
		return ""
	}
	return string(data)
}

// notebook mirrors the nbformat v4 layout; cell source may be either a
// single string or a list of line strings.
type notebook struct {
	Cells []struct {
		CellType string          `json:"cell_type"`
		Source   json.RawMessage `json:"source"`
	} `json:"cells"`
}

// Notebook extracts the source of code cells, in cell order, separated
// by a line break. Markdown and raw cells are ignored.
func Notebook(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.L.Error("failed to read notebook", "path", path, "error", err)
		return ""
	}
	var nb notebook
	if err := json.Unmarshal(data, &nb); err != nil {
		logger.L.Error("failed to parse notebook", "path", path, "error", err)
		return ""
	}

	var b strings.Builder
	for _, cell := range nb.Cells {
		if cell.CellType != "code" {
			continue
		}
		b.WriteString(cellSource(cell.Source))
		b.WriteString("\n")
	}
	return b.String()
}

func cellSource(raw json.RawMessage) string {
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single
	}
	var lines []string
	if err := json.Unmarshal(raw, &lines); err == nil {
		return strings.Join(lines, "")
	}
	return ""
}

// PDF extracts per-page text in page order. No OCR; pages without a
// text layer contribute nothing.
func PDF(path string) string {
	f, reader, err := pdf.Open(path)
	if err != nil {
		logger.L.Error("failed to open PDF", "path", path, "error", err)
		return ""
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			logger.L.Warn("failed to extract PDF page", "path", path, "page", i, "error", err)
			continue
		}
		b.WriteString(text)
	}
	return b.String()
}
