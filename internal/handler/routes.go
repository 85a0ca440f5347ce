package handler

import (
	"io/fs"
	"net/http"

	"github.com/msomdec/mercado-social/internal/service"
)

// Services bundles what the HTTP layer needs.
type Services struct {
	Auth          *service.AuthService
	Posts         *service.PostService
	Follows       *service.FollowService
	Notifications *service.NotificationService
	Profiles      *service.ProfileService
	Catalog       *service.CatalogService
	Search        *service.SearchService
}

// RegisterRoutes sets up all HTTP routes on the given mux. Uploaded media is
// served read-only from uploadDir under /uploads/.
func RegisterRoutes(mux *http.ServeMux, svc Services, cookieSecure bool, uploadDir string) {
	authHandler := NewAuthHandler(svc.Auth, cookieSecure)
	postHandler := NewPostHandler(svc.Posts)
	followHandler := NewFollowHandler(svc.Follows)
	notificationHandler := NewNotificationHandler(svc.Notifications)
	profileHandler := NewProfileHandler(svc.Profiles)
	catalogHandler := NewCatalogHandler(svc.Catalog)
	searchHandler := NewSearchHandler(svc.Search)

	mux.HandleFunc("GET /healthz", HandleHealthz)

	// Accounts.
	mux.HandleFunc("POST /api/register", authHandler.HandleRegister)
	mux.HandleFunc("POST /api/login", authHandler.HandleLogin)
	mux.HandleFunc("POST /api/logout", authHandler.HandleLogout)
	mux.Handle("GET /api/me", RequireAuth(svc.Auth, http.HandlerFunc(authHandler.HandleMe)))

	// Posts, likes and comments.
	mux.HandleFunc("POST /api/posts", postHandler.HandleCreate)
	mux.HandleFunc("GET /api/feed", postHandler.HandleFeed)
	mux.HandleFunc("POST /api/posts/{id}/like", postHandler.HandleToggleLike)
	mux.HandleFunc("POST /api/posts/{id}/comments", postHandler.HandleAddComment)
	mux.HandleFunc("GET /api/posts/{id}/comments", postHandler.HandleListComments)

	mux.HandleFunc("GET /api/notifications/{userId}", notificationHandler.HandleList)
	mux.HandleFunc("POST /api/notifications/{userId}/read", notificationHandler.HandleMarkAllRead)

	// Profiles.
	mux.HandleFunc("GET /api/profile/{id}", profileHandler.HandleGet)
	mux.HandleFunc("POST /api/profile/update", profileHandler.HandleUpdate)
	mux.HandleFunc("GET /api/user/{id}", profileHandler.HandleGetUser)

	// Stores and catalog.
	mux.HandleFunc("GET /api/store/{id}/catalog", catalogHandler.HandleGetCatalog)
	mux.HandleFunc("PUT /api/store/{id}", catalogHandler.HandleUpdateStore)
	mux.HandleFunc("POST /api/products", catalogHandler.HandleCreateProduct)
	mux.HandleFunc("PUT /api/products/{id}", catalogHandler.HandleUpdateProduct)
	mux.HandleFunc("DELETE /api/products/{id}", catalogHandler.HandleDeleteProduct)
	mux.HandleFunc("POST /api/promotions", catalogHandler.HandleCreatePromotion)
	mux.HandleFunc("PUT /api/promotions/{id}", catalogHandler.HandleUpdatePromotion)
	mux.HandleFunc("DELETE /api/promotions/{id}", catalogHandler.HandleDeletePromotion)

	// Follow graph.
	mux.HandleFunc("POST /api/follow/{id}", followHandler.HandleFollow)
	mux.HandleFunc("DELETE /api/follow/{id}", followHandler.HandleUnfollow)
	mux.HandleFunc("GET /api/follow/status/{id}", followHandler.HandleStatus)
	mux.HandleFunc("GET /api/users/{id}/followers", followHandler.HandleFollowers)
	mux.HandleFunc("GET /api/users/{id}/following", followHandler.HandleFollowing)

	mux.HandleFunc("GET /api/search", searchHandler.HandleSearch)

	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(filesOnly{http.Dir(uploadDir)})))

	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "API route not found")
	})
}

// filesOnly serves regular files and reports directories as missing, so
// upload folders are never listed.
type filesOnly struct {
	dir http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.dir.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, fs.ErrNotExist
	}
	return file, nil
}
