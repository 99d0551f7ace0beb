package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/DInduwara/Flood-management-system/internal/auth"
	"github.com/DInduwara/Flood-management-system/internal/service"
	"github.com/DInduwara/Flood-management-system/models"
	"github.com/DInduwara/Flood-management-system/repository"
)

type handlers struct {
	intake *service.Intake
	log    *zap.Logger
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, h.intake.Health())
}

func (h *handlers) createSosRequest(c *gin.Context) {
	raw, ok := bindObject(c)
	if !ok {
		return
	}
	s, err := h.intake.SubmitSosRequest(c.Request.Context(), raw)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, s.Public())
}

// listSosRequests hides internal_notes unless the caller is an operator.
func (h *handlers) listSosRequests(c *gin.Context) {
	list, err := h.intake.ListSosRequests(c.Request.Context(), c.Query("district"), c.Query("status"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if p, _ := auth.FromContext(c.Request.Context()); p.IsOperator() {
		c.JSON(http.StatusOK, list)
		return
	}
	out := make([]models.PublicSosRequest, 0, len(list))
	for i := range list {
		out = append(out, list[i].Public())
	}
	c.JSON(http.StatusOK, out)
}

func (h *handlers) updateSosRequest(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	raw, ok := bindObject(c)
	if !ok {
		return
	}
	s, err := h.intake.UpdateSosRequest(c.Request.Context(), id, raw)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *handlers) createHelpOffer(c *gin.Context) {
	raw, ok := bindObject(c)
	if !ok {
		return
	}
	o, err := h.intake.SubmitHelpOffer(c.Request.Context(), raw)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

func (h *handlers) listReliefCamps(c *gin.Context) {
	camps, err := h.intake.ListReliefCamps(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, camps)
}

func (h *handlers) createReliefCamp(c *gin.Context) {
	raw, ok := bindObject(c)
	if !ok {
		return
	}
	camp, err := h.intake.CreateReliefCamp(c.Request.Context(), raw)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, camp)
}

func (h *handlers) setReliefCampActive(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	raw, ok := bindObject(c)
	if !ok {
		return
	}
	active, err := models.DecodeCampActivation(raw)
	if err != nil {
		h.fail(c, err)
		return
	}
	camp, err := h.intake.SetReliefCampActive(c.Request.Context(), id, active)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, camp)
}

// bindObject decodes the body as a JSON object. An empty body reads as {};
// anything else that is not an object is a 400.
func bindObject(c *gin.Context) (map[string]any, bool) {
	var raw map[string]any
	if c.Request.ContentLength == 0 {
		return map[string]any{}, true
	}
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "JSON parse error - " + err.Error()})
		return nil, false
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, true
}

// pathID mirrors an int path converter: anything but a positive integer is 404.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return 0, false
	}
	return id, true
}

func (h *handlers) fail(c *gin.Context, err error) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		c.AbortWithStatusJSON(http.StatusBadRequest, ve.Fields)
	case errors.Is(err, repository.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"detail": "Not found."})
	default:
		h.log.Error("request failed", zap.String("request_id", c.GetString(requestIDHeader)), zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
	}
}
