// AngelaMos | 2026
// dto.go

package report

import (
	"math"
	"time"
)

type CreateReportRequest struct {
	LessonID      string `json:"lessonId"      validate:"required,uuid"`
	ReporterEmail string `json:"reporterEmail" validate:"required,email,max=255"`
	Reason        string `json:"reason"        validate:"required,max=1000"`
}

type ReportResponse struct {
	ID            string    `json:"id"`
	LessonID      string    `json:"lessonId"`
	LessonTitle   string    `json:"lessonTitle,omitempty"`
	ReporterEmail string    `json:"reporterEmail"`
	Reason        string    `json:"reason"`
	CreatedAt     time.Time `json:"createdAt"`
}

type ListReportsParams struct {
	Page     int
	PageSize int
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
	maxPage         = math.MaxInt32 / maxPageSize
)

func (p *ListReportsParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > maxPage {
		p.Page = maxPage
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
}

func (p *ListReportsParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToReportResponse(r *Report) ReportResponse {
	return ReportResponse{
		ID:            r.ID,
		LessonID:      r.LessonID,
		ReporterEmail: r.ReporterEmail,
		Reason:        r.Reason,
		CreatedAt:     r.CreatedAt,
	}
}

func ToReportList(rows []WithLesson) []ReportResponse {
	out := make([]ReportResponse, 0, len(rows))
	for i := range rows {
		resp := ToReportResponse(&rows[i].Report)
		resp.LessonTitle = rows[i].LessonTitle
		out = append(out, resp)
	}
	return out
}
