package handler

import (
	"time"

	"github.com/msomdec/mercado-social/internal/domain"
	"github.com/msomdec/mercado-social/internal/service"
)

// UserDTO is the JSON representation of a user.
type UserDTO struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	AccountKind    string `json:"accountKind"`
	Name           string `json:"name"`
	Bio            string `json:"bio"`
	ProfilePhoto   string `json:"profilePhoto"`
	FollowersCount int    `json:"followersCount"`
	FollowingCount int    `json:"followingCount"`
	PostCount      int    `json:"postCount"`
	CreatedAt      string `json:"createdAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		AccountKind:    string(u.AccountKind),
		Name:           u.Name,
		Bio:            u.Bio,
		ProfilePhoto:   u.ProfilePhoto,
		FollowersCount: u.FollowersCount,
		FollowingCount: u.FollowingCount,
		PostCount:      u.PostCount,
		CreatedAt:      u.CreatedAt.Format(time.RFC3339),
	}
}

// ProfileDTO is the public summary of a user shown next to their content.
type ProfileDTO struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	ProfilePhoto string `json:"profilePhoto"`
}

func toProfileDTO(p *domain.PublicProfile) *ProfileDTO {
	if p == nil {
		return nil
	}
	return &ProfileDTO{ID: p.ID, Username: p.Username, Name: p.Name, ProfilePhoto: p.ProfilePhoto}
}

func toProfileDTOs(profiles []domain.PublicProfile) []ProfileDTO {
	dtos := make([]ProfileDTO, len(profiles))
	for i := range profiles {
		dtos[i] = *toProfileDTO(&profiles[i])
	}
	return dtos
}

// PostDTO is the JSON representation of a post.
type PostDTO struct {
	ID            int64       `json:"id"`
	AuthorID      int64       `json:"authorId"`
	Author        *ProfileDTO `json:"author,omitempty"`
	Content       string      `json:"content"`
	Media         []string    `json:"media"`
	Visibility    string      `json:"visibility"`
	LikesCount    int         `json:"likesCount"`
	CommentsCount int         `json:"commentsCount"`
	CreatedAt     string      `json:"createdAt"`
}

func toPostDTO(p domain.Post) PostDTO {
	media := p.Media
	if media == nil {
		media = []string{}
	}
	return PostDTO{
		ID:            p.ID,
		AuthorID:      p.AuthorID,
		Content:       p.Content,
		Media:         media,
		Visibility:    p.Visibility,
		LikesCount:    p.LikesCount,
		CommentsCount: p.CommentsCount,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
}

func toPostDTOs(posts []domain.Post) []PostDTO {
	dtos := make([]PostDTO, len(posts))
	for i, p := range posts {
		dtos[i] = toPostDTO(p)
	}
	return dtos
}

func toPostViewDTOs(views []service.PostView) []PostDTO {
	dtos := make([]PostDTO, len(views))
	for i, v := range views {
		dtos[i] = toPostDTO(v.Post)
		dtos[i].Author = toProfileDTO(v.Author)
	}
	return dtos
}

// CommentDTO is the JSON representation of a comment. Author is null when
// the writer no longer resolves.
type CommentDTO struct {
	ID        int64       `json:"id"`
	PostID    int64       `json:"postId"`
	AuthorID  int64       `json:"authorId"`
	Author    *ProfileDTO `json:"author"`
	Content   string      `json:"content"`
	CreatedAt string      `json:"createdAt"`
}

func toCommentDTO(c service.CommentView) CommentDTO {
	return CommentDTO{
		ID:        c.ID,
		PostID:    c.PostID,
		AuthorID:  c.AuthorID,
		Author:    toProfileDTO(c.Author),
		Content:   c.Content,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}

func toCommentDTOs(comments []service.CommentView) []CommentDTO {
	dtos := make([]CommentDTO, len(comments))
	for i, c := range comments {
		dtos[i] = toCommentDTO(c)
	}
	return dtos
}

// NotificationDTO is the JSON representation of a notification.
type NotificationDTO struct {
	ID         int64       `json:"id"`
	UserID     int64       `json:"userId"`
	Type       string      `json:"type"`
	FromUserID int64       `json:"fromUserId"`
	FromUser   *ProfileDTO `json:"fromUser"`
	PostID     *int64      `json:"postId"`
	Read       bool        `json:"read"`
	CreatedAt  string      `json:"createdAt"`
}

func toNotificationDTOs(views []service.NotificationView) []NotificationDTO {
	dtos := make([]NotificationDTO, len(views))
	for i, v := range views {
		dtos[i] = NotificationDTO{
			ID:         v.ID,
			UserID:     v.UserID,
			Type:       string(v.Type),
			FromUserID: v.FromUserID,
			FromUser:   toProfileDTO(v.FromUser),
			PostID:     v.PostID,
			Read:       v.Read,
			CreatedAt:  v.CreatedAt.Format(time.RFC3339),
		}
	}
	return dtos
}

// StoreDTO is the JSON representation of a store.
type StoreDTO struct {
	ID        int64  `json:"id"`
	OwnerID   int64  `json:"ownerId"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	District  string `json:"district"`
	City      string `json:"city"`
	Phone     string `json:"phone"`
	CreatedAt string `json:"createdAt"`
}

func toStoreDTO(s *domain.Store) *StoreDTO {
	if s == nil {
		return nil
	}
	return &StoreDTO{
		ID:        s.ID,
		OwnerID:   s.OwnerID,
		Name:      s.Name,
		Address:   s.Address,
		District:  s.District,
		City:      s.City,
		Phone:     s.Phone,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
	}
}

// ProductDTO is the JSON representation of a product.
type ProductDTO struct {
	ID        int64   `json:"id"`
	StoreID   int64   `json:"storeId"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Brand     string  `json:"brand"`
	Unit      string  `json:"unit"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	CreatedAt string  `json:"createdAt"`
}

func toProductDTO(p domain.Product) ProductDTO {
	return ProductDTO{
		ID:        p.ID,
		StoreID:   p.StoreID,
		Name:      p.Name,
		Category:  p.Category,
		Brand:     p.Brand,
		Unit:      p.Unit,
		Price:     p.Price,
		Image:     p.Image,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}

func toProductDTOs(products []domain.Product) []ProductDTO {
	dtos := make([]ProductDTO, len(products))
	for i, p := range products {
		dtos[i] = toProductDTO(p)
	}
	return dtos
}

// PromotionDTO is the JSON representation of a promotion.
type PromotionDTO struct {
	ID        int64   `json:"id"`
	StoreID   int64   `json:"storeId"`
	Products  []int64 `json:"products"`
	Title     string  `json:"title"`
	StartsAt  string  `json:"startsAt"`
	EndsAt    string  `json:"endsAt"`
	CreatedAt string  `json:"createdAt"`
}

func toPromotionDTO(p domain.Promotion) PromotionDTO {
	ids := p.ProductIDs
	if ids == nil {
		ids = []int64{}
	}
	return PromotionDTO{
		ID:        p.ID,
		StoreID:   p.StoreID,
		Products:  ids,
		Title:     p.Title,
		StartsAt:  p.StartsAt.Format(time.RFC3339),
		EndsAt:    p.EndsAt.Format(time.RFC3339),
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}

func toPromotionDTOs(promotions []domain.Promotion) []PromotionDTO {
	dtos := make([]PromotionDTO, len(promotions))
	for i, p := range promotions {
		dtos[i] = toPromotionDTO(p)
	}
	return dtos
}

// SearchUserDTO and SearchStoreDTO are the slim search hits.
type SearchUserDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

type SearchStoreDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
