package httpapi

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/DInduwara/Flood-management-system/internal/auth"
	"github.com/DInduwara/Flood-management-system/internal/service"
)

// Options configures the router.
type Options struct {
	JWTSecret      string
	AllowedOrigins []string
	Logger         *zap.Logger
}

// NewRouter builds the /api surface used by the web client and coordinators.
func NewRouter(intake *service.Intake, opts Options) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	h := &handlers{intake: intake, log: log}

	r := gin.New()
	r.Use(requestID(), accessLog(log), recovery(log), cors(opts.AllowedOrigins))

	r.GET("/api/health/", h.health)

	api := r.Group("/api", auth.GinOptional(opts.JWTSecret))
	{
		api.POST("/sos-requests/", h.createSosRequest)
		api.GET("/sos-requests/list/", h.listSosRequests)
		api.POST("/help-offers/", h.createHelpOffer)
		api.GET("/relief-camps/", h.listReliefCamps)
	}

	ops := api.Group("", auth.GinRequireOperator())
	{
		ops.PATCH("/sos-requests/:id/", h.updateSosRequest)
		ops.POST("/relief-camps/", h.createReliefCamp)
		ops.PATCH("/relief-camps/:id/", h.setReliefCampActive)
	}

	r.NoRoute(func(c *gin.Context) { c.JSON(404, gin.H{"detail": "Not found."}) })
	return r
}
