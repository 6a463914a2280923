package handlers

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/dream-finder/internal/auth"
	"github.com/justsurfingit/dream-finder/internal/middleware"
	"github.com/justsurfingit/dream-finder/internal/models"
)

// Handlers groups everything the router dispatches to.
type Handlers struct {
	Jobs         *JobHandler
	Users        *UserHandler
	Companies    *CompanyHandler
	Applications *ApplicationHandler
	Bookmarks    *BookmarkHandler
	Feedback     *FeedbackHandler
}

type RouterConfig struct {
	Gate        *auth.Gate
	CORSOrigins []string
	Limiter     middleware.Limiter
	RateLimit   int // requests per minute per client IP
}

func NewRouter(cfg RouterConfig, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	r.Use(middleware.RateLimit(cfg.Limiter, cfg.RateLimit, time.Minute))

	authn := middleware.Authenticate(cfg.Gate)
	admin := middleware.RequireRole(cfg.Gate, models.RoleAdmin)
	hr := middleware.RequireRole(cfg.Gate, models.RoleHR)
	self := middleware.RequireSelf("email")

	r.GET("/", Root)
	r.GET("/health", HealthCheck)

	// Users and tokens
	r.POST("/create/jwt", h.Users.IssueToken)
	r.POST("/create/user", h.Users.CreateUser)
	r.GET("/get/users", h.Users.ListUsers)
	r.GET("/users/admin/:email", authn, self, h.Users.IsAdmin)
	r.GET("/users/hr/:email", authn, self, h.Users.IsHR)
	r.PATCH("/users/role/:email", authn, admin, h.Users.SetRole)
	r.DELETE("/users/:email", authn, admin, h.Users.DeleteUser)

	r.PATCH("/incrementAppliedCount/:id", h.Jobs.IncrementApplied)

	// Bookmarks
	r.GET("/bookmark/:user", h.Bookmarks.ListBookmarks)
	r.POST("/bookmark", h.Bookmarks.AddBookmark)
	r.DELETE("/bookmark/:id", h.Bookmarks.DeleteBookmark)

	// Feedback and contact
	r.POST("/feedback", h.Feedback.SubmitFeedback)
	r.GET("/feedback", h.Feedback.ListFeedback)
	r.POST("/contact", h.Feedback.SubmitContact)
	r.GET("/contact", authn, admin, h.Feedback.ListContacts)

	api := r.Group("/api/v1")
	{
		api.GET("/jobs", h.Jobs.Search)
		api.GET("/jobs/:id", h.Jobs.GetJob)
		api.GET("/recent-jobs", h.Jobs.Recent)
		api.GET("/most-viewed15-jobs", h.Jobs.MostViewed)
		api.GET("/posted-jobs/:email", authn, hr, self, h.Jobs.PostedBy)
		api.POST("/post-job", authn, hr, h.Jobs.CreateJob)
		api.DELETE("/jobs/:id", authn, hr, h.Jobs.DeleteJob)

		api.POST("/apply", authn, h.Applications.Apply)
		api.GET("/applications/:email", authn, self, h.Applications.ListMine)

		api.GET("/companies", h.Companies.ListCompanies)
		api.GET("/companies/:email", h.Companies.GetCompany)
		api.POST("/companies", authn, hr, h.Companies.SaveCompany)
	}
	return r
}

func corsConfig(origins []string) cors.Config {
	config := cors.DefaultConfig()
	if len(origins) == 0 || slices.Contains(origins, "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
		config.AllowCredentials = true
	}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	return config
}
