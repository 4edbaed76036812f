package registration

import (
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"registration-service/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	service   Service
	validate  *validator.Validate
	logger    *slog.Logger
	metrics   *metrics.Metrics
	maxPlaces int
}

func NewHandler(service Service, logger *slog.Logger, m *metrics.Metrics, maxPlaces int) *Handler {
	v := validator.New()
	// Report field errors under their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Handler{
		service:   service,
		validate:  v,
		logger:    logger,
		metrics:   m,
		maxPlaces: maxPlaces,
	}
}

// RegisterRoutes mounts the public routes on the api group and the
// privileged ones on the admin group, which is expected to carry the
// admin-gate middleware.
func (h *Handler) RegisterRoutes(public gin.IRouter, admin gin.IRouter) {
	public.POST("/registrations", h.Create)
	public.GET("/registrations/count", h.Count)
	public.GET("/registrations/availability", h.Availability)

	admin.GET("/registrations", h.List)
	admin.GET("/registrations/export", h.Export)
	admin.DELETE("/registrations/:id", h.Delete)
	admin.POST("/registrations/batch-delete", h.DeleteMany)
	admin.DELETE("/registrations", h.DeleteAll)
}

// The consent and attestation flags are pointers so that an omitted flag is
// a validation error rather than a silent false.
type createRequest struct {
	FirstName             string `json:"firstName" validate:"required"`
	LastName              string `json:"lastName" validate:"required"`
	Email                 string `json:"email" validate:"required,email"`
	Phone                 string `json:"phone" validate:"required"`
	ContactConsent        *bool  `json:"contactConsent" validate:"required"`
	AttendanceAttestation *bool  `json:"attendanceAttestation" validate:"required"`
	EventID               string `json:"eventId"`
}

type deleteManyRequest struct {
	IDs []int64 `json:"ids" validate:"required,min=1"`
}

func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		h.respondValidationError(c, err)
		return
	}

	reg := &Registration{
		FirstName:             req.FirstName,
		LastName:              req.LastName,
		Email:                 req.Email,
		Phone:                 req.Phone,
		ContactConsent:        *req.ContactConsent,
		AttendanceAttestation: *req.AttendanceAttestation,
		EventID:               req.EventID,
	}

	created, err := h.service.Create(c.Request.Context(), reg)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.metrics.RecordRegistrationCreated(c.Request.Context())
	h.logger.InfoContext(c.Request.Context(), "registration created", "eventId", created.EventID)

	c.JSON(http.StatusCreated, created)
}

func (h *Handler) Count(c *gin.Context) {
	count, err := h.service.Count(c.Request.Context(), c.Query("eventId"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// Availability reports the advisory capacity state the registration form
// uses to disable itself. It is informational only; Create never rejects a
// submission for being over capacity.
func (h *Handler) Availability(c *gin.Context) {
	count, err := h.service.Count(c.Request.Context(), c.Query("eventId"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	remaining := h.maxPlaces - count
	if remaining < 0 {
		remaining = 0
	}
	c.JSON(http.StatusOK, gin.H{
		"count":     count,
		"maxPlaces": h.maxPlaces,
		"remaining": remaining,
	})
}

func (h *Handler) List(c *gin.Context) {
	regs, err := h.service.List(c.Request.Context(), c.Query("eventId"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.metrics.RecordListViewed(c.Request.Context())

	c.JSON(http.StatusOK, regs)
}

func (h *Handler) Export(c *gin.Context) {
	regs, err := h.service.List(c.Request.Context(), c.Query("eventId"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	data, err := ExportCSV(regs)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.metrics.RecordExportGenerated(c.Request.Context())
	h.logger.InfoContext(c.Request.Context(), "csv export generated", "rows", len(regs))

	c.Header("Content-Disposition", `attachment; filename="`+ExportFilename(time.Now())+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid registration id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.metrics.RecordDeleteRequest(c.Request.Context())
	h.logger.InfoContext(c.Request.Context(), "registration deleted", "id", id)

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) DeleteMany(c *gin.Context) {
	var req deleteManyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		h.respondValidationError(c, err)
		return
	}

	if err := h.service.DeleteMany(c.Request.Context(), req.IDs); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.metrics.RecordDeleteRequest(c.Request.Context())
	h.logger.InfoContext(c.Request.Context(), "registrations deleted", "count", len(req.IDs))

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) DeleteAll(c *gin.Context) {
	eventID := c.Query("eventId")

	if err := h.service.DeleteAll(c.Request.Context(), eventID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.metrics.RecordDeleteRequest(c.Request.Context())
	h.logger.InfoContext(c.Request.Context(), "all registrations deleted", "eventId", eventID)

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) respondValidationError(c *gin.Context, err error) {
	fields := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fields})
}

func (h *Handler) handleServiceError(c *gin.Context, err error) {
	if errors.Is(err, ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errors.Is(err, ErrUnavailable) {
		h.logger.Warn("storage unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
		return
	}
	h.logger.Error("internal error", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
