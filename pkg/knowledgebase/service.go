package knowledgebase

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/xuri/excelize/v2"

	"github.com/Ramsey-B/fern/pkg/tracing"
)

// Entry is one node of the knowledge base tree.
type Entry struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"` // "file" or "folder"
	Path     string  `json:"path"`
	Children []Entry `json:"children,omitempty"`
}

// Sheet is one worksheet of a previewed workbook.
type Sheet struct {
	Name string     `json:"name"`
	Data [][]string `json:"data"`
}

// FileContent is a previewable rendering of a knowledge base file. Content
// is worksheet data for workbooks, a data URI for binary formats and plain
// text otherwise.
type FileContent struct {
	FileType string `json:"file_type"`
	Content  any    `json:"content"`
}

// Service exposes a shared document folder as a browsable tree. Every path
// from a caller is resolved against the root and confined to it.
type Service struct {
	root   string
	logger ectologger.Logger
}

// NewService creates a knowledge base service rooted at the given directory
func NewService(root string, logger ectologger.Logger) *Service {
	return &Service{root: filepath.Clean(root), logger: logger}
}

// EnsureRoot creates the root directory if it does not exist.
func (s *Service) EnsureRoot() error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("failed to create knowledge base directory %s: %w", s.root, err)
	}
	return nil
}

// resolve joins a caller-supplied relative path onto the root, rejecting
// anything that would escape it.
func (s *Service) resolve(relPath string) (string, error) {
	full := filepath.Clean(filepath.Join(s.root, relPath))
	rel, err := filepath.Rel(s.root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", httperror.NewHTTPError(http.StatusBadRequest, "path is outside the knowledge base")
	}
	return full, nil
}

// Tree returns the whole knowledge base as a nested structure
func (s *Service) Tree(ctx context.Context) ([]Entry, error) {
	ctx, span := tracing.StartSpan(ctx, "KnowledgeBase.Tree")
	defer span.End()

	entries, err := s.walk(s.root)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("failed to read knowledge base tree")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to read knowledge base")
	}
	return entries, nil
}

func (s *Service) walk(dir string) ([]Entry, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	entries := []Entry{}
	for _, item := range items {
		itemPath := filepath.Join(dir, item.Name())
		relPath, err := filepath.Rel(s.root, itemPath)
		if err != nil {
			return nil, err
		}

		if item.IsDir() {
			children, err := s.walk(itemPath)
			if err != nil {
				return nil, err
			}
			entries = append(entries, Entry{
				Name:     item.Name(),
				Type:     "folder",
				Path:     relPath,
				Children: children,
			})
		} else {
			entries = append(entries, Entry{
				Name: item.Name(),
				Type: "file",
				Path: relPath,
			})
		}
	}
	return entries, nil
}

// CreateItem adds an empty file or a folder under parentPath
func (s *Service) CreateItem(ctx context.Context, parentPath, name string, isFolder bool) error {
	ctx, span := tracing.StartSpan(ctx, "KnowledgeBase.CreateItem")
	defer span.End()

	if name == "" || name != filepath.Base(name) {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid item name")
	}

	full, err := s.resolve(filepath.Join(parentPath, name))
	if err != nil {
		return err
	}

	if isFolder {
		err = os.MkdirAll(full, 0o755)
	} else {
		err = os.WriteFile(full, nil, 0o644)
	}
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"path": full,
		}).Error("failed to create knowledge base item")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to create item")
	}

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"path":      full,
		"is_folder": isFolder,
	}).Info("Created knowledge base item")
	return nil
}

// Rename gives an item a new name within its directory
func (s *Service) Rename(ctx context.Context, oldPath, newName string) error {
	ctx, span := tracing.StartSpan(ctx, "KnowledgeBase.Rename")
	defer span.End()

	if newName == "" || newName != filepath.Base(newName) {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid item name")
	}

	fullOld, err := s.resolve(oldPath)
	if err != nil {
		return err
	}
	fullNew, err := s.resolve(filepath.Join(filepath.Dir(oldPath), newName))
	if err != nil {
		return err
	}

	if err := os.Rename(fullOld, fullNew); err != nil {
		if os.IsNotExist(err) {
			return httperror.NewHTTPErrorf(http.StatusNotFound, "item %q does not exist", oldPath)
		}
		s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"old_path": fullOld,
			"new_path": fullNew,
		}).Error("failed to rename knowledge base item")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to rename item")
	}
	return nil
}

// Delete removes a file or a folder with its contents
func (s *Service) Delete(ctx context.Context, relPath string) error {
	ctx, span := tracing.StartSpan(ctx, "KnowledgeBase.Delete")
	defer span.End()

	if filepath.Clean(relPath) == "." {
		return httperror.NewHTTPError(http.StatusBadRequest, "cannot delete the knowledge base root")
	}

	full, err := s.resolve(relPath)
	if err != nil {
		return err
	}

	if _, err := os.Stat(full); os.IsNotExist(err) {
		return httperror.NewHTTPErrorf(http.StatusNotFound, "item %q does not exist", relPath)
	}

	if err := os.RemoveAll(full); err != nil {
		s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"path": full,
		}).Error("failed to delete knowledge base item")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete item")
	}

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"path": full,
	}).Info("Deleted knowledge base item")
	return nil
}

// ReadFile renders a file for preview. Workbooks become per-sheet cell
// grids, binary formats become base64 data URIs and anything else is
// returned as text.
func (s *Service) ReadFile(ctx context.Context, relPath string) (*FileContent, error) {
	ctx, span := tracing.StartSpan(ctx, "KnowledgeBase.ReadFile")
	defer span.End()

	full, err := s.resolve(relPath)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(full))
	fileType := strings.TrimPrefix(ext, ".")

	switch ext {
	case ".xlsx", ".xlsm":
		sheets, err := s.readWorkbook(full)
		if err != nil {
			s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
				"path": full,
			}).Error("failed to read workbook")
			return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to read file")
		}
		return &FileContent{FileType: fileType, Content: sheets}, nil

	case ".pdf", ".jpg", ".jpeg", ".png", ".gif":
		data, err := os.ReadFile(full)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, httperror.NewHTTPErrorf(http.StatusNotFound, "item %q does not exist", relPath)
			}
			return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to read file")
		}
		mimeType := mime.TypeByExtension(ext)
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}
		uri := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
		return &FileContent{FileType: fileType, Content: uri}, nil

	default:
		data, err := os.ReadFile(full)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, httperror.NewHTTPErrorf(http.StatusNotFound, "item %q does not exist", relPath)
			}
			return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to read file")
		}
		return &FileContent{FileType: fileType, Content: string(data)}, nil
	}
}

func (s *Service) readWorkbook(path string) ([]Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := []Sheet{}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, err
		}
		if rows == nil {
			rows = [][]string{}
		}
		sheets = append(sheets, Sheet{Name: name, Data: rows})
	}
	return sheets, nil
}
