package server

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Epistemic-Technology/pdf-splitter/internal/config"
	"github.com/Epistemic-Technology/pdf-splitter/internal/documents"
	"github.com/Epistemic-Technology/pdf-splitter/internal/logger"
	"github.com/Epistemic-Technology/pdf-splitter/internal/operations"
	"github.com/Epistemic-Technology/pdf-splitter/internal/pdf"
	"github.com/Epistemic-Technology/pdf-splitter/models"
)

//go:embed static
var staticFiles embed.FS

type BaseRes struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type DataRes struct {
	BaseRes
	Data any `json:"data,omitempty"`
}

// previewRes is a rendered page as the browser sees it
type previewRes struct {
	PageNumber  int             `json:"page_number"`
	Label       string          `json:"label"`
	Viewport    models.Viewport `json:"viewport"`
	Width       int             `json:"width"`
	Height      int             `json:"height"`
	ImageURL    string          `json:"image_url"`
	DownloadURL string          `json:"download_url"`
}

type stateRes struct {
	Summary  string               `json:"summary"`
	CanSplit bool                 `json:"can_split"`
	Previews []previewRes         `json:"previews"`
	Failures []models.PageFailure `json:"failures,omitempty"`
}

type remoteReq struct {
	URL      string `json:"url"`
	ZoteroID string `json:"zotero_id"`
}

type handler struct {
	splitter *operations.Splitter
	cfg      *config.Config
	log      logger.Logger
}

// NewRouter builds the HTTP surface: the drop-zone page and its JSON API.
func NewRouter(splitter *operations.Splitter, cfg *config.Config, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.MaxMultipartMemory = cfg.Server.MaxUploadBytes

	h := &handler{splitter: splitter, cfg: cfg, log: log}

	assets, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	router.StaticFS("/static", http.FS(assets))
	router.GET("/", func(c *gin.Context) {
		c.FileFromFS("/", http.FS(assets))
	})

	api := router.Group("/api")
	api.GET("/state", h.getState)
	api.POST("/files", h.uploadFile)
	api.POST("/files/remote", h.remoteFile)
	api.POST("/split", h.split)
	api.GET("/pages/:page/preview.png", h.preview)
	api.GET("/pages/:page/download", h.download)

	return router
}

func (h *handler) getState(c *gin.Context) {
	c.JSON(http.StatusOK, DataRes{BaseRes{http.StatusOK, "ok"}, toStateRes(h.splitter.State())})
}

func (h *handler) uploadFile(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.Server.MaxUploadBytes)

	var candidates []models.CandidateFile
	form, err := c.MultipartForm()
	if err != nil {
		h.fail(c, http.StatusBadRequest, fmt.Errorf("failed to read upload: %w", err))
		return
	}
	for _, fh := range form.File["file"] {
		candidate, err := documents.FromMultipart(fh)
		if err != nil {
			h.fail(c, http.StatusBadRequest, err)
			return
		}
		candidates = append(candidates, candidate)
	}
	h.submit(c, candidates...)
}

func (h *handler) remoteFile(c *gin.Context) {
	var req remoteReq
	if err := c.BindJSON(&req); err != nil {
		return
	}
	if req.URL == "" && req.ZoteroID == "" {
		h.fail(c, http.StatusBadRequest, errors.New("provide a url or a zotero_id"))
		return
	}
	creds := documents.ZoteroCredentials{APIKey: h.cfg.Zotero.APIKey, LibraryID: h.cfg.Zotero.LibraryID}
	candidate, err := documents.GetCandidate(c.Request.Context(), models.SourceInfo{URL: req.URL, ZoteroID: req.ZoteroID}, creds)
	if err != nil {
		h.fail(c, http.StatusBadGateway, err)
		return
	}
	h.submit(c, candidate)
}

func (h *handler) submit(c *gin.Context, candidates ...models.CandidateFile) {
	if err := h.splitter.Submit(candidates...); err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, DataRes{BaseRes{http.StatusOK, "file accepted"}, toStateRes(h.splitter.State())})
}

func (h *handler) split(c *gin.Context) {
	report, err := h.splitter.Split(c.Request.Context())
	if err != nil {
		var parseErr *pdf.ParseError
		switch {
		case errors.Is(err, operations.ErrNoActiveFile):
			h.fail(c, http.StatusBadRequest, err)
		case errors.As(err, &parseErr):
			h.fail(c, http.StatusUnprocessableEntity, err)
		default:
			h.fail(c, http.StatusInternalServerError, err)
		}
		return
	}
	message := fmt.Sprintf("rendered %d of %d pages", len(report.Previews), report.PageCount)
	c.JSON(http.StatusOK, DataRes{BaseRes{http.StatusOK, message}, toStateRes(h.splitter.State())})
}

func (h *handler) preview(c *gin.Context) {
	page, ok := h.pageParam(c)
	if !ok {
		return
	}
	preview, err := h.splitter.Preview(page)
	if err != nil {
		h.fail(c, http.StatusNotFound, err)
		return
	}
	c.Data(http.StatusOK, "image/png", preview.PNG)
}

func (h *handler) download(c *gin.Context) {
	page, ok := h.pageParam(c)
	if !ok {
		return
	}
	req, err := h.splitter.ExportRequest(page)
	if err != nil {
		h.fail(c, http.StatusNotFound, err)
		return
	}
	artifact, err := h.splitter.Export(req)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, artifact.Filename))
	c.Data(http.StatusOK, artifact.MediaType, artifact.Data)
}

func (h *handler) pageParam(c *gin.Context) (int, bool) {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil || page < 1 {
		h.fail(c, http.StatusBadRequest, fmt.Errorf("invalid page number %q", c.Param("page")))
		return 0, false
	}
	return page, true
}

// fail writes the error envelope. Expected workflow errors carry their user
// notice as the message.
func (h *handler) fail(c *gin.Context, status int, err error) {
	message := operations.Notice(err)
	if message == "" {
		message = err.Error()
	}
	if status >= http.StatusInternalServerError {
		h.log.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	} else {
		h.log.Warn("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, BaseRes{Code: status, Message: message})
}

func toStateRes(state operations.State) stateRes {
	res := stateRes{
		Summary:  state.Summary,
		CanSplit: state.CanSplit,
		Previews: make([]previewRes, 0, len(state.Previews)),
		Failures: state.Failures,
	}
	for _, p := range state.Previews {
		res.Previews = append(res.Previews, previewRes{
			PageNumber:  p.PageNumber,
			Label:       p.Label,
			Viewport:    p.Viewport,
			Width:       p.Width,
			Height:      p.Height,
			ImageURL:    fmt.Sprintf("/api/pages/%d/preview.png", p.PageNumber),
			DownloadURL: fmt.Sprintf("/api/pages/%d/download", p.PageNumber),
		})
	}
	return res
}
