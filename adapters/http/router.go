package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/khoahotran/portfolio-hub/pkg/logger"
)

type RouterDeps struct {
	ServiceName   string
	AnonKey       string
	Authenticator Authenticator
	Logger        logger.Logger
	Auth          *AuthHandler
	Profiles      *ProfileHandler
	Drafts        *DraftHandler
	Feed          *FeedHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(otelgin.Middleware(d.ServiceName))
	router.Use(LoggingMiddleware(d.Logger))
	router.Use(gin.Recovery())
	router.Use(ErrorMiddleware(d.Logger))

	router.GET("/api/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
	// Feed readers can't send the API key.
	router.GET("/api/feed.rss", d.Feed.RSS)
	router.GET("/api/feed.atom", d.Feed.Atom)

	api := router.Group("/api")
	api.Use(APIKeyMiddleware(d.AnonKey))
	{
		public := api.Group("/")
		public.Use(OptionalAuth(d.Authenticator, d.Logger))
		{
			public.POST("/auth/signup", d.Auth.SignUp)
			public.POST("/auth/confirm", d.Auth.ConfirmEmail)
			public.POST("/auth/signin", d.Auth.SignIn)
			public.POST("/auth/signout", d.Auth.SignOut)
			public.GET("/auth/session", d.Auth.GetSession)
			public.GET("/auth/user", d.Auth.GetUser)
			public.GET("/auth/role", d.Auth.GetRole)

			public.GET("/profiles", d.Profiles.ListProfiles)
			public.GET("/profiles/:id", d.Profiles.GetProfile)
		}

		private := api.Group("/")
		private.Use(RequireAuth(d.Authenticator))
		{
			private.GET("/dashboard", d.Profiles.Dashboard)
			private.POST("/profiles", d.Profiles.CreateProfile)
			private.PUT("/profiles/:id", d.Profiles.UpdateProfile)
			private.DELETE("/profiles/:id", d.Profiles.DeleteProfile)

			drafts := private.Group("/drafts")
			{
				drafts.POST("", d.Drafts.CreateDraft)
				drafts.GET("/:id", d.Drafts.GetDraft)
				drafts.DELETE("/:id", d.Drafts.DiscardDraft)
				drafts.PUT("/:id/fields", d.Drafts.SetFields)
				drafts.POST("/:id/skills", d.Drafts.AddSkill)
				drafts.DELETE("/:id/skills/:index", d.Drafts.RemoveSkill)
				drafts.PUT("/:id/socials/:key", d.Drafts.SetSocial)
				drafts.POST("/:id/projects", d.Drafts.AddProject)
				drafts.DELETE("/:id/projects/:index", d.Drafts.RemoveProject)
				drafts.POST("/:id/submit", d.Drafts.SubmitDraft)
			}
		}
	}

	return router
}
