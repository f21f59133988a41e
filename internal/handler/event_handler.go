package handler

import (
	"net/http"
	"strconv"

	"eventhub/internal/middleware"
	"eventhub/internal/model"
	"eventhub/internal/service"
	apperrors "eventhub/pkg/app_errors"
	"eventhub/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgEventNotFoundOwner  = "Event not found or unauthorized access."
	msgEventNotFoundPublic = "Event not found."
)

type EventHandler struct {
	service service.EventService
}

func NewEventHandler(service service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) RegisterRoutes(r *gin.Engine, requireAuth gin.HandlerFunc) {
	owner := r.Group("/api/v1/user/event", requireAuth)
	{
		owner.POST("create", h.Create)
		owner.GET("show", h.List)
		owner.GET("show/:id", h.GetByID)
		owner.PUT("update/:id", h.Update)
		owner.DELETE("delete/:id", h.Delete)
	}

	public := r.Group("/api/v1/event")
	{
		public.GET("fetch/types", h.GetEventTypes)
		public.GET("fetch/tags", h.GetEventTags)
		public.GET(":slug", h.GetBySlug)
	}
}

// CreateEventRequest 建立活動請求
type CreateEventRequest struct {
	Name               string   `json:"name" binding:"required,max=255"`
	Type               string   `json:"type" binding:"required,max=255"`
	Description        string   `json:"description" binding:"required"`
	Tags               []string `json:"tags"`
	StartDate          string   `json:"start_date" binding:"required,datetime=2006-01-02 15:04:05"`
	EndDate            string   `json:"end_date" binding:"required,datetime=2006-01-02 15:04:05"`
	LocationLink       string   `json:"location_link" binding:"required"`
	AttendanceCapacity *int     `json:"attendance_capacity"`
	TicketPricing      *string  `json:"ticket_pricing"`
	TicketPrice        *int     `json:"ticket_price"`
	Draft              *bool    `json:"draft"`
}

// UpdateEventRequest 部分更新請求，缺少的欄位保持原值
type UpdateEventRequest struct {
	Name               *string   `json:"name" binding:"omitempty,max=255"`
	Type               *string   `json:"type" binding:"omitempty,max=255"`
	Description        *string   `json:"description"`
	Tags               *[]string `json:"tags"`
	StartDate          *string   `json:"start_date" binding:"omitempty,datetime=2006-01-02 15:04:05"`
	EndDate            *string   `json:"end_date" binding:"omitempty,datetime=2006-01-02 15:04:05"`
	LocationLink       *string   `json:"location_link"`
	AttendanceCapacity *int      `json:"attendance_capacity"`
	TicketPricing      *string   `json:"ticket_pricing"`
	TicketPrice        *int      `json:"ticket_price"`
	Status             *string   `json:"status"`
}

func (h *EventHandler) Create(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var req CreateEventRequest
	if !BindJSON(c, &req) {
		return
	}

	startDate, err := model.ParseDateTime(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Message: "Invalid request format.", Status: 0})
		return
	}
	endDate, err := model.ParseDateTime(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Message: "Invalid request format.", Status: 0})
		return
	}

	event := &model.Event{
		Name:               req.Name,
		Type:               req.Type,
		Description:        req.Description,
		Tags:               model.Tags(req.Tags),
		StartDate:          startDate,
		EndDate:            endDate,
		LocationLink:       req.LocationLink,
		AttendanceCapacity: req.AttendanceCapacity,
		TicketPricing:      req.TicketPricing,
		TicketPrice:        intToFloat(req.TicketPrice),
		Draft:              req.Draft,
	}

	created, err := h.service.Create(c, userID, event)
	if err != nil {
		h.handleError(c, err, "Create", msgEventNotFoundOwner)
		return
	}

	c.JSON(http.StatusCreated, Response{
		Message: "Your event has been published and is now live!",
		Status:  1,
		Data:    created.EventURL,
	})
}

func (h *EventHandler) List(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	filter := model.ParseStatusFilter(c.Query("status"))

	events, err := h.service.List(c, userID, filter)
	if err != nil {
		h.handleError(c, err, "List", msgEventNotFoundOwner)
		return
	}

	if len(events) == 0 {
		c.JSON(http.StatusOK, Response{
			Message: "No events found matching the criteria.",
			Status:  1,
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Message: "Events retrieved successfully.",
		Status:  1,
		Data:    events,
	})
}

func (h *EventHandler) GetByID(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	id, ok := h.eventID(c)
	if !ok {
		return
	}

	event, err := h.service.GetByID(c, userID, id)
	if err != nil {
		h.handleError(c, err, "GetByID", msgEventNotFoundOwner)
		return
	}

	c.JSON(http.StatusOK, Response{
		Message: "Event retrieved successfully.",
		Status:  1,
		Data:    event,
	})
}

func (h *EventHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")

	event, err := h.service.GetBySlug(c, slug)
	if err != nil {
		h.handleError(c, err, "GetBySlug", msgEventNotFoundPublic)
		return
	}

	c.JSON(http.StatusOK, Response{
		Message: "Event retrieved successfully.",
		Status:  1,
		Data:    event,
	})
}

func (h *EventHandler) Update(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	id, ok := h.eventID(c)
	if !ok {
		return
	}

	var req UpdateEventRequest
	if !BindJSON(c, &req) {
		return
	}

	params := model.UpdateEventParams{
		Name:               req.Name,
		Type:               req.Type,
		Description:        req.Description,
		LocationLink:       req.LocationLink,
		AttendanceCapacity: req.AttendanceCapacity,
		TicketPricing:      req.TicketPricing,
		TicketPrice:        intToFloat(req.TicketPrice),
		Status:             req.Status,
	}
	if req.Tags != nil {
		tags := model.Tags(*req.Tags)
		params.Tags = &tags
	}
	if req.StartDate != nil {
		startDate, err := model.ParseDateTime(*req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, Response{Message: "Invalid request format.", Status: 0})
			return
		}
		params.StartDate = &startDate
	}
	if req.EndDate != nil {
		endDate, err := model.ParseDateTime(*req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, Response{Message: "Invalid request format.", Status: 0})
			return
		}
		params.EndDate = &endDate
	}

	updated, err := h.service.Update(c, userID, id, params)
	if err != nil {
		h.handleError(c, err, "Update", msgEventNotFoundOwner)
		return
	}

	c.JSON(http.StatusOK, Response{
		Message: "Event updated successfully.",
		Status:  1,
		Data:    updated,
	})
}

func (h *EventHandler) Delete(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	id, ok := h.eventID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c, userID, id); err != nil {
		h.handleError(c, err, "Delete", msgEventNotFoundOwner)
		return
	}

	c.JSON(http.StatusOK, Response{
		Message: "Event deleted successfully.",
		Status:  1,
	})
}

func (h *EventHandler) GetEventTypes(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Message: "Event types retrieved successfully.",
		Status:  1,
		Data:    model.EventTypes,
	})
}

func (h *EventHandler) GetEventTags(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Message: "Event tags retrieved successfully.",
		Status:  1,
		Data:    model.EventTags,
	})
}

// eventID 解析路徑參數，非數字的 id 與查無資料回同一個 404，不洩漏存在與否
func (h *EventHandler) eventID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, Response{Message: msgEventNotFoundOwner, Status: 0})
		return 0, false
	}
	return id, true
}

func (h *EventHandler) handleError(c *gin.Context, err error, operation, notFoundMessage string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case err == apperrors.ErrEventNotFound:
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, Response{Message: notFoundMessage, Status: 0})
	case err == apperrors.ErrInvalidInput:
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, Response{Message: "Invalid request format.", Status: 0})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, Response{Message: "Internal server error.", Status: 0})
	}
}

func intToFloat(v *int) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}
