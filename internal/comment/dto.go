// AngelaMos | 2026
// dto.go

package comment

import (
	"time"
)

type CreateCommentRequest struct {
	LessonID    string `json:"lessonId"    validate:"required,uuid"`
	AuthorEmail string `json:"authorEmail" validate:"required,email,max=255"`
	AuthorName  string `json:"authorName"  validate:"max=100"`
	Body        string `json:"comment"     validate:"required,max=2000"`
}

type CommentResponse struct {
	ID          string    `json:"id"`
	LessonID    string    `json:"lessonId"`
	AuthorEmail string    `json:"authorEmail"`
	AuthorName  string    `json:"authorName,omitempty"`
	Body        string    `json:"comment"`
	CreatedAt   time.Time `json:"createdAt"`
}

const maxListSize = 200

func ToCommentResponse(c *Comment) CommentResponse {
	return CommentResponse{
		ID:          c.ID,
		LessonID:    c.LessonID,
		AuthorEmail: c.AuthorEmail,
		AuthorName:  c.AuthorName,
		Body:        c.Body,
		CreatedAt:   c.CreatedAt,
	}
}

func ToCommentResponseList(comments []Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, ToCommentResponse(&comments[i]))
	}
	return out
}
