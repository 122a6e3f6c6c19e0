// AngelaMos | 2026
// dto.go

package lesson

import (
	"math"
	"time"
)

type CreateLessonRequest struct {
	CreatorEmail  string `json:"creatorEmail"  validate:"required,email,max=255"`
	CreatorName   string `json:"creatorName"   validate:"max=100"`
	Title         string `json:"title"         validate:"required,min=1,max=200"`
	Description   string `json:"description"   validate:"max=20000"`
	Category      string `json:"category"      validate:"max=100"`
	EmotionalTone string `json:"emotionalTone" validate:"max=100"`
	ImageURL      string `json:"image"         validate:"omitempty,url,max=2048"`
	Visibility    string `json:"visibility"    validate:"omitempty,oneof=public private"`
	AccessLevel   string `json:"accessLevel"   validate:"omitempty,oneof=free premium"`
	PriceCents    int64  `json:"priceCents"    validate:"min=0"`
}

// UpdateLessonRequest is a partial update; nil fields are left unchanged.
type UpdateLessonRequest struct {
	Title         *string `json:"title"         validate:"omitempty,min=1,max=200"`
	Description   *string `json:"description"   validate:"omitempty,max=20000"`
	Category      *string `json:"category"      validate:"omitempty,max=100"`
	EmotionalTone *string `json:"emotionalTone" validate:"omitempty,max=100"`
	ImageURL      *string `json:"image"         validate:"omitempty,url,max=2048"`
	Visibility    *string `json:"visibility"    validate:"omitempty,oneof=public private"`
	AccessLevel   *string `json:"accessLevel"   validate:"omitempty,oneof=free premium"`
	PriceCents    *int64  `json:"priceCents"    validate:"omitempty,min=0"`
}

type LessonResponse struct {
	ID            string      `json:"id"`
	CreatorEmail  string      `json:"creatorEmail"`
	CreatorName   string      `json:"creatorName"`
	Title         string      `json:"title"`
	Description   string      `json:"description,omitempty"`
	Category      string      `json:"category"`
	EmotionalTone string      `json:"emotionalTone"`
	ImageURL      string      `json:"image,omitempty"`
	Visibility    Visibility  `json:"visibility"`
	AccessLevel   AccessLevel `json:"accessLevel"`
	PriceCents    int64       `json:"priceCents"`
	SaveCount     int         `json:"saveCount"`
	Locked        bool        `json:"locked"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

type ListLessonsResponse struct {
	Lessons []LessonResponse `json:"lessons"`
	Count   int              `json:"count"`
}

const (
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortMostSaved = "mostSaved"

	defaultPageSize = 8
	maxPageSize     = 50
	maxPage         = math.MaxInt32 / maxPageSize
)

// ListLessonsParams pages are zero based.
type ListLessonsParams struct {
	Page          int
	Size          int
	Search        string
	Category      string
	EmotionalTone string
	Sort          string
}

func (p *ListLessonsParams) Normalize() {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Page > maxPage {
		p.Page = maxPage
	}
	if p.Size < 1 {
		p.Size = defaultPageSize
	}
	if p.Size > maxPageSize {
		p.Size = maxPageSize
	}
	switch p.Sort {
	case SortNewest, SortOldest, SortMostSaved:
	default:
		p.Sort = SortNewest
	}
}

func (p *ListLessonsParams) Offset() int {
	return p.Page * p.Size
}

func ToLessonResponse(v View) LessonResponse {
	resp := LessonResponse{
		ID:            v.ID,
		CreatorEmail:  v.CreatorEmail,
		CreatorName:   v.CreatorName,
		Title:         v.Title,
		Description:   v.Description,
		Category:      v.Category,
		EmotionalTone: v.EmotionalTone,
		ImageURL:      v.ImageURL,
		Visibility:    v.Visibility,
		AccessLevel:   v.AccessLevel,
		PriceCents:    v.PriceCents,
		SaveCount:     v.SaveCount,
		Locked:        v.Locked,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
	if v.Locked {
		resp.Description = ""
	}
	return resp
}

func ToLessonResponseList(views []View) []LessonResponse {
	out := make([]LessonResponse, 0, len(views))
	for _, v := range views {
		out = append(out, ToLessonResponse(v))
	}
	return out
}

func ownedViews(lessons []Lesson) []View {
	views := make([]View, 0, len(lessons))
	for _, l := range lessons {
		views = append(views, View{Lesson: l})
	}
	return views
}
