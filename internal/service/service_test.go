package service_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/msomdec/mercado-social/internal/domain"
	"github.com/msomdec/mercado-social/internal/repository/localfs"
	"github.com/msomdec/mercado-social/internal/repository/sqlite"
	"github.com/msomdec/mercado-social/internal/service"
	"github.com/msomdec/mercado-social/internal/validation"
)

const testJWTSecret = "test-secret-key-for-unit-tests-0123456789"

type testEnv struct {
	db            *sqlite.DB
	uploadDir     string
	auth          *service.AuthService
	follows       *service.FollowService
	posts         *service.PostService
	notifications *service.NotificationService
	profiles      *service.ProfileService
	catalog       *service.CatalogService
	search        *service.SearchService
	media         *service.MediaService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	db, err := sqlite.New(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	uploadDir := filepath.Join(dir, "uploads")
	files, err := localfs.New(uploadDir)
	if err != nil {
		t.Fatalf("localfs.New: %v", err)
	}

	v := validation.New()
	media := service.NewMediaService(files)
	users := db.Users()
	return &testEnv{
		db:            db,
		uploadDir:     uploadDir,
		// Use cost 4 for fast tests.
		auth:          service.NewAuthService(users, v, testJWTSecret, 4),
		follows:       service.NewFollowService(users, db.Follows()),
		posts:         service.NewPostService(db.Posts(), users, media, v),
		notifications: service.NewNotificationService(db.Notifications(), users),
		profiles:      service.NewProfileService(users, db.Stores(), db.Products(), db.Posts(), media, v),
		catalog:       service.NewCatalogService(db.Stores(), db.Products(), db.Promotions(), media, v),
		search:        service.NewSearchService(users, db.Stores()),
		media:         media,
	}
}

func (e *testEnv) register(t *testing.T, username string) *domain.User {
	t.Helper()
	user, _, err := e.auth.Register(context.Background(), service.RegisterInput{
		Username:    username,
		Email:       username + "@example.com",
		Password:    "password123",
		AccountKind: string(domain.AccountPersonal),
		Name:        username,
	})
	if err != nil {
		t.Fatalf("Register %s: %v", username, err)
	}
	return user
}

func (e *testEnv) registerBusiness(t *testing.T, username, storeName string) (*domain.User, *domain.Store) {
	t.Helper()
	user, store, err := e.auth.Register(context.Background(), service.RegisterInput{
		Username:    username,
		Email:       username + "@example.com",
		Password:    "password123",
		AccountKind: string(domain.AccountBusiness),
		Name:        username,
		StoreName:   storeName,
		StoreCity:   "Lima",
	})
	if err != nil {
		t.Fatalf("Register %s: %v", username, err)
	}
	return user, store
}

func (e *testEnv) createPost(t *testing.T, authorID int64, content string) *domain.Post {
	t.Helper()
	post, err := e.posts.Create(context.Background(), service.CreatePostInput{AuthorID: authorID, Content: content}, nil)
	if err != nil {
		t.Fatalf("Create post: %v", err)
	}
	return post
}

// pngBytes returns a small valid PNG image.
func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}
