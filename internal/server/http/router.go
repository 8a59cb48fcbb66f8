package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/scanmed/internal/logging"
	"github.com/dmitrijs2005/scanmed/internal/server/models"
	"github.com/gin-gonic/gin"
)

func NewRouter(logger logging.Logger, svc Services, opts Options) *gin.Engine {
	h := &handler{svc: svc, logger: logger}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery(), requestLogger(logger), corsMiddleware(opts.AllowedOrigins))
	r.NoRoute(func(c *gin.Context) { abortWithError(c, http.StatusNotFound, "route not found") })
	r.NoMethod(func(c *gin.Context) { abortWithError(c, http.StatusMethodNotAllowed, "method not allowed") })

	r.GET("/health", h.health)

	api := r.Group("/api", authMiddleware([]byte(opts.SecretKey)))

	scans := api.Group("/health-scans")
	scans.POST("", h.createScan)
	scans.GET("", h.listScans)
	scans.POST("/image-upload", h.presignUpload)
	scans.GET("/:id", h.getScan)
	scans.GET("/:id/image", h.scanImage)

	meds := api.Group("/medications")
	meds.POST("", h.createMedication)
	meds.GET("", h.listMedications)
	meds.PATCH("/:id", h.updateMedication)

	reading := api.Group("/reading-history")
	reading.POST("", h.createReading)
	reading.GET("", h.listReadings)

	chats := api.Group("/chats")
	chats.POST("", h.createChat)
	chats.GET("", h.listChats)

	// reading history answers these with 400
	for _, kind := range models.AllKinds {
		g := api.Group("/" + kind.Collection())
		g.DELETE("/:id", h.trash(kind, false))
		g.PATCH("/:id/restore", h.trash(kind, true))
	}

	api.GET("/history", h.history)
	api.GET("/history/export", h.exportHistory)

	api.GET("/admin/stats", adminOnly(), h.stats)

	return r
}
