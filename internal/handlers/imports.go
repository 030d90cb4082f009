package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/fern/pkg/events"
	"github.com/Ramsey-B/fern/pkg/importer"
)

// ImportHandler handles spreadsheet imports and their progress stream
type ImportHandler struct {
	importer *importer.Importer
	broker   *events.Broker
}

// NewImportHandler creates a new import handler
func NewImportHandler(imp *importer.Importer, broker *events.Broker) *ImportHandler {
	return &ImportHandler{importer: imp, broker: broker}
}

// ImportRequest is the request body for importing a server-local file
type ImportRequest struct {
	FilePath string `json:"file_path" validate:"required"`
	Table    string `json:"table"`
}

// RegisterRoutes registers the import routes
func (h *ImportHandler) RegisterRoutes(g *echo.Group) {
	imports := g.Group("/imports")
	imports.POST("", h.Import)
	imports.GET("/events", h.Events)
}

// Import handles POST /imports. It accepts either a multipart upload under
// the "file" field or a JSON body naming a server-local path. The optional
// table field overrides file-name classification.
func (h *ImportHandler) Import(c echo.Context) error {
	ctx := c.Request().Context()

	if file, err := c.FormFile("file"); err == nil {
		path, cleanup, err := saveUpload(file)
		if err != nil {
			return err
		}
		defer cleanup()

		result, err := h.importer.ImportFile(ctx, path, c.FormValue("table"))
		if err != nil {
			return BadRequest(err.Error())
		}
		return SuccessResponse(c, result)
	}

	var req ImportRequest
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.importer.ImportFile(ctx, req.FilePath, req.Table)
	if err != nil {
		return BadRequest(err.Error())
	}
	return SuccessResponse(c, result)
}

// Events handles GET /imports/events as a server-sent event stream of
// import progress. Frames a slow client misses are dropped, not queued.
func (h *ImportHandler) Events(c echo.Context) error {
	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	stream, cancel := h.broker.Subscribe()
	defer cancel()

	heartbeat := time.NewTicker(15 * time.Second)
	defer heartbeat.Stop()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-stream:
			if !ok {
				return nil
			}
			payload, err := json.Marshal(event)
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				return nil
			}
			w.Flush()
		case <-heartbeat.C:
			if _, err := io.WriteString(w, ": keepalive\n\n"); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}

// saveUpload writes a multipart upload into a temp directory, keeping the
// original file name so table classification still works.
func saveUpload(file *multipart.FileHeader) (string, func(), error) {
	dir, err := os.MkdirTemp("", "fern-import-")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { os.RemoveAll(dir) }

	src, err := file.Open()
	if err != nil {
		cleanup()
		return "", nil, err
	}
	defer src.Close()

	path := filepath.Join(dir, filepath.Base(file.Filename))
	dst, err := os.Create(path)
	if err != nil {
		cleanup()
		return "", nil, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		cleanup()
		return "", nil, err
	}
	return path, cleanup, nil
}
