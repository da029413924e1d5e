package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dangarahotel/frontdesk-backend/internal/pkg/response"
	"github.com/dangarahotel/frontdesk-backend/internal/room"
)

type Handler struct {
	service room.Service
}

func NewHandler(service room.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListRoomsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	rooms, err := h.service.List(c.Request.Context(), room.Status(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RoomResponse, len(rooms))
	for i, v := range rooms {
		items[i] = NewRoomResponse(v)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	v, err := h.service.GetView(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRoomResponse(v))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRoomBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	r, err := h.service.Create(c.Request.Context(), room.CreateRequest{
		RoomNumber:    body.RoomNumber,
		RoomType:      body.RoomType,
		Capacity:      body.Capacity,
		PricePerNight: body.PricePerNight,
		Description:   body.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewRoomResponse(&room.View{Room: *r, Status: room.StatusAvailable}))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateRoomBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if _, err := h.service.Update(c.Request.Context(), id, room.UpdateRequest{
		RoomNumber:    body.RoomNumber,
		RoomType:      body.RoomType,
		Capacity:      body.Capacity,
		PricePerNight: body.PricePerNight,
		Description:   body.Description,
	}); err != nil {
		response.Error(c, err)
		return
	}

	v, err := h.service.GetView(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewRoomResponse(v))
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkCleaning flags the room for housekeeping.
func (h *Handler) MarkCleaning(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.MarkCleaning(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "room flagged for cleaning")
}

// MarkAvailable clears the cleaning flag. Rejected while the room is occupied.
func (h *Handler) MarkAvailable(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.MarkAvailable(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "room marked available")
}

func (h *Handler) StatusCounts(c *gin.Context) {
	counts, err := h.service.StatusCounts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := StatusCountsResponse{
		Available: counts[room.StatusAvailable],
		Reserved:  counts[room.StatusReserved],
		Occupied:  counts[room.StatusOccupied],
		Cleaning:  counts[room.StatusCleaning],
	}
	resp.Total = resp.Available + resp.Reserved + resp.Occupied + resp.Cleaning
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Types(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"types": room.RoomTypes})
}
