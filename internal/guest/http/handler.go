package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dangarahotel/frontdesk-backend/internal/booking"
	"github.com/dangarahotel/frontdesk-backend/internal/guest"
	"github.com/dangarahotel/frontdesk-backend/internal/pkg/response"
)

const maxDocumentSize = 10 << 20 // 10 MiB

type Handler struct {
	service guest.Service
}

func NewHandler(service guest.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := make([]GuestListItemResponse, len(items))
	for i, item := range items {
		resp[i] = NewGuestListItemResponse(item)
	}
	c.JSON(http.StatusOK, gin.H{"items": resp})
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	g, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewGuestResponse(g))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateGuestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := guest.CreateRequest{
		FullName:   body.FullName,
		Phone:      body.Phone,
		IDType:     body.IDType,
		IDNumber:   body.IDNumber,
		PassportID: body.PassportID,
		Nation:     body.Nation,
		Region:     body.Region,
		Street:     body.Street,
	}
	if body.BirthDate != "" {
		d, err := booking.ParseDate(body.BirthDate)
		if err != nil {
			response.Error(c, err)
			return
		}
		req.BirthDate = &d
	}

	g, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewGuestResponse(g))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateGuestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := guest.UpdateRequest{
		FullName:   body.FullName,
		Phone:      body.Phone,
		IDType:     body.IDType,
		IDNumber:   body.IDNumber,
		PassportID: body.PassportID,
		Nation:     body.Nation,
		Region:     body.Region,
		Street:     body.Street,
	}
	if body.BirthDate != nil && *body.BirthDate != "" {
		d, err := booking.ParseDate(*body.BirthDate)
		if err != nil {
			response.Error(c, err)
			return
		}
		req.BirthDate = &d
	}

	g, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewGuestResponse(g))
}

// History returns the guest's own booking history, newest first.
func (h *Handler) History(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	stays, err := h.service.History(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]StayResponse, len(stays))
	for i, s := range stays {
		items[i] = NewStayResponse(s)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Archive is the cross-guest stay archive with search, filters, sorting, and
// pagination.
func (h *Handler) Archive(c *gin.Context) {
	var req ListArchiveRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := guest.ArchiveFilter{
		ListParams: req.ListParams,
		Query:      req.Query,
		Status:     req.Status,
		SortBy:     req.SortBy,
	}
	if req.DateFrom != "" {
		d, err := booking.ParseDate(req.DateFrom)
		if err != nil {
			response.Error(c, err)
			return
		}
		filter.DateFrom = &d
	}
	if req.DateTo != "" {
		d, err := booking.ParseDate(req.DateTo)
		if err != nil {
			response.Error(c, err)
			return
		}
		filter.DateTo = &d
	}

	records, total, err := h.service.Archive(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ArchiveRecordResponse, len(records))
	for i, r := range records {
		items[i] = NewArchiveRecordResponse(r)
	}
	filter.Normalize()
	c.JSON(http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}

// UploadDocument stores an ID/passport scan for the guest. The image is
// normalized and a thumbnail generated server-side.
func (h *Handler) UploadDocument(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fileHeader.Size > maxDocumentSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read uploaded file"})
		return
	}
	defer f.Close()

	doc, err := h.service.UploadDocument(c.Request.Context(), id, f)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewDocumentResponse(doc))
}

func (h *Handler) ListDocuments(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	docs, err := h.service.ListDocuments(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]DocumentResponse, len(docs))
	for i, d := range docs {
		items[i] = NewDocumentResponse(d)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// ServeDocument streams the stored scan. Uploads are normalized to JPEG.
func (h *Handler) ServeDocument(c *gin.Context) {
	h.serveDocument(c, false)
}

// ServeDocumentThumb streams the scan's thumbnail.
func (h *Handler) ServeDocumentThumb(c *gin.Context) {
	h.serveDocument(c, true)
}

func (h *Handler) serveDocument(c *gin.Context, thumb bool) {
	id := c.Param("docId")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	stream, err := h.service.OpenDocument(c.Request.Context(), id, thumb)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", "image/jpeg")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		// Response already started, nothing left to report.
		return
	}
}
