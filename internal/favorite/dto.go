// AngelaMos | 2026
// dto.go

package favorite

import (
	"time"

	"github.com/carterperez-dev/templates/lessons-backend/internal/policy"
)

type CreateFavoriteRequest struct {
	UserEmail string `json:"userEmail" validate:"required,email,max=255"`
	LessonID  string `json:"lessonId"  validate:"required,uuid"`
}

type FavoriteResponse struct {
	ID        string    `json:"id"`
	UserEmail string    `json:"userEmail"`
	LessonID  string    `json:"lessonId"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateFavoriteResponse struct {
	Favorite      FavoriteResponse `json:"favorite"`
	AlreadyExists bool             `json:"alreadyExists"`
	Message       string           `json:"message"`
}

type SavedResponse struct {
	FavoriteResponse
	Title         string             `json:"title"`
	Category      string             `json:"category,omitempty"`
	EmotionalTone string             `json:"emotionalTone,omitempty"`
	Image         string             `json:"image,omitempty"`
	AccessLevel   policy.AccessLevel `json:"accessLevel"`
}

func ToFavoriteResponse(f *Favorite) FavoriteResponse {
	return FavoriteResponse{
		ID:        f.ID,
		UserEmail: f.UserEmail,
		LessonID:  f.LessonID,
		CreatedAt: f.CreatedAt,
	}
}

func ToSavedList(rows []Saved) []SavedResponse {
	out := make([]SavedResponse, 0, len(rows))
	for i := range rows {
		out = append(out, SavedResponse{
			FavoriteResponse: ToFavoriteResponse(&rows[i].Favorite),
			Title:            rows[i].LessonTitle,
			Category:         rows[i].LessonCategory,
			EmotionalTone:    rows[i].LessonTone,
			Image:            rows[i].LessonImage,
			AccessLevel:      rows[i].LessonAccess,
		})
	}
	return out
}
