package routes

import (
	"io/fs"
	"net/http"

	"github.com/templui/diary/assets"
	"github.com/templui/diary/internal/app"
	"github.com/templui/diary/internal/handler"
	"github.com/templui/diary/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	home := handler.NewHomeHandler()
	seo := handler.NewSEOHandler(app.Cfg.AppURL)
	auth := handler.NewAuthHandler(app.AuthService)
	verify := handler.NewVerifyHandler(app.VerificationService)
	diary := handler.NewDiaryHandler(app.DiaryService)
	health := handler.NewHealthHandler(app.Ping, app.Cfg.DBDriver)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	// Static files
	sub, _ := fs.Sub(assets.AssetsFS, ".")
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.FS(sub))))

	mux.HandleFunc("GET /healthz", health.Health)

	// SEO
	mux.HandleFunc("GET /robots.txt", seo.Robots)
	mux.HandleFunc("GET /sitemap.xml", seo.Sitemap)

	// Home
	mux.HandleFunc("GET /{$}", home.HomePage)

	// Auth (rate limited)
	rateLimiter := middleware.RateLimitAuth(app.Cfg.RateLimitAuth, app.Cfg.RateLimitWindow)

	mux.HandleFunc("GET /login", auth.LoginPage)
	mux.HandleFunc("POST /login", rateLimiter(auth.Login))
	mux.HandleFunc("GET /register", auth.RegisterPage)
	mux.HandleFunc("POST /register", rateLimiter(auth.Register))
	mux.HandleFunc("GET /logout", auth.Logout)

	// ============================================================================
	// EMAIL VERIFICATION (signed in, not yet verified)
	// ============================================================================

	mux.HandleFunc("GET /verify", middleware.Guarded(verify.VerifyPage, middleware.RequireUnverified...))
	mux.HandleFunc("POST /verify", middleware.Guarded(verify.Verify, middleware.RequireUnverified...))

	// ============================================================================
	// DIARY (verified users)
	// ============================================================================

	mux.HandleFunc("GET /diary", middleware.Guarded(diary.List, middleware.RequireAuthenticated...))
	mux.HandleFunc("POST /diary", middleware.Guarded(diary.Create, middleware.RequireAuthenticated...))

	// Owner only
	owner := middleware.Owner(app.DiaryService)
	mux.HandleFunc("GET /diary/{id}/edit", middleware.Guarded(diary.EditPage, owner...))
	mux.HandleFunc("PUT /diary/{id}", middleware.Guarded(diary.Update, owner...))

	// Any verified user, no ownership check
	mux.HandleFunc("DELETE /diary/{id}", middleware.Guarded(diary.Delete, middleware.RequireAuthenticated...))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	// 404
	mux.HandleFunc("/{path...}", home.NotFoundPage)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Config(app.Cfg),  // Config must be first (CSRF reads APP_ENV for the Secure flag)
		middleware.NonceMiddleware,  // Generate CSP nonce for each request (must be before SecurityHeaders)
		middleware.SecurityHeaders,  // Security headers for all responses (XSS, clickjacking, etc.)
		middleware.MethodOverride,   // _method form field, must run before the mux matches
		middleware.Session(app.AuthService, app.UserService),
		middleware.RequestLogging,   // after Session so it can log user_id
		middleware.CSRFProtection,   // CSRF protection for all state-changing requests
		middleware.WithURLPath,
	)

	return handler
}
