package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"bloodportal/internal/auth"
	"bloodportal/internal/metrics"
	"bloodportal/internal/services"
)

type Deps struct {
	Directory services.DirectoryService
	Accounts  services.AccountService
	Auth      *auth.Middleware
	Metrics   *metrics.Metrics
	NowFn     func() time.Time
	// Location decides which calendar day "today" is for camp dates. Nil means UTC.
	Location *time.Location
}

type PortalHandler struct {
	directory services.DirectoryService
	accounts  services.AccountService
	auth      *auth.Middleware
	nowFn     func() time.Time
	location  *time.Location
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	registerValidators()

	h := &PortalHandler{
		directory: deps.Directory,
		accounts:  deps.Accounts,
		auth:      deps.Auth,
		nowFn:     deps.NowFn,
		location:  deps.Location,
	}
	if h.nowFn == nil {
		h.nowFn = func() time.Time { return time.Now().UTC() }
	}
	if h.location == nil {
		h.location = time.UTC
	}

	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	api := r.Group("/api")
	api.Use(deps.Auth.LoadUser())

	// Public directory endpoints
	api.GET("/blood-availability", h.searchAvailability)
	api.GET("/blood-banks", h.listBloodBanks)
	api.GET("/blood-banks/:id", h.getBloodBank)
	api.GET("/blood-banks/:id/inventory", h.listBankInventory)
	api.GET("/donation-camps", h.listDonationCamps)
	api.GET("/donation-camps/:id", h.getDonationCamp)
	api.GET("/statistics", h.statistics)
	api.GET("/blood-compatibility", h.bloodCompatibility)
	api.GET("/reference", h.reference)

	// Account endpoints
	api.POST("/register", h.register)
	api.POST("/login", h.login)
	api.POST("/logout", h.logout)
	api.GET("/user", auth.RequireUser("not logged in"), h.currentUser)
	api.PATCH("/user", auth.RequireUser("not logged in"), h.updateProfile)

	// Donor endpoints
	api.POST("/donation-camps", auth.RequireUser("you must be logged in to register a camp"), h.registerDonationCamp)
	api.GET("/user/donations", auth.RequireUser("you must be logged in to view your donations"), h.listUserDonations)

	// Administrator endpoints
	admin := api.Group("", auth.RequireAdmin())
	admin.POST("/blood-banks", h.createBloodBank)
	admin.POST("/inventory", h.addInventory)
	admin.PATCH("/inventory/:id", h.updateInventory)
	admin.PATCH("/donation-camps/:id/status", h.setCampStatus)
	admin.POST("/donations", h.recordDonation)
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrBloodGroupRequired),
		errors.Is(err, services.ErrInvalidBloodGroup),
		errors.Is(err, services.ErrInvalidComponent),
		errors.Is(err, services.ErrInvalidStatus):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrBloodBankNotFound),
		errors.Is(err, services.ErrInventoryNotFound),
		errors.Is(err, services.ErrCampNotFound),
		errors.Is(err, services.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrUsernameTaken):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func parseID(c *gin.Context, what string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + what + " id"})
		return 0, false
	}
	return id, true
}
