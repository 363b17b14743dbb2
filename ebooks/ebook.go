package ebooks

import (
	"io"
	"time"
)

// UploadType selects how an uploaded PDF is filed.
type UploadType string

const (
	// UploadSingle is a whole-subject book.
	UploadSingle UploadType = "single"
	// UploadChapterWise is one chapter of a subject; ChapterNumber is required.
	UploadChapterWise UploadType = "chapter_wise"
)

// PageSize is the number of ebooks the backend returns per page.
const PageSize = 10

const uploadedAtLayout = "2006-01-02 15:04:05"

// Ebook is a syllabus PDF. FilePath is a temporary download link.
type Ebook struct {
	ID          int    `json:"id"`
	FilePath    string `json:"file_path"`
	Board       string `json:"board"`
	SubjectName string `json:"subject_name"`
	ClassNumber int    `json:"class_number"`
	Name        string `json:"ebook_name"`
	Type        string `json:"ebook_type"`
	UploadedAt  string `json:"uploaded_at"`
}

// UploadTime parses UploadedAt.
func (e *Ebook) UploadTime() (time.Time, error) {
	return time.Parse(uploadedAtLayout, e.UploadedAt)
}

// Filter narrows a listing. Zero values are not sent.
type Filter struct {
	BoardID   int
	ClassID   int
	SubjectID int
	Page      int
}

// Page is one page of a listing. End is set once the caller has paged past
// the last ebook.
type Page struct {
	Number int     `json:"page"`
	Ebooks []Ebook `json:"ebooks"`
	End    bool    `json:"end"`
}

// UploadRequest is sent as multipart/form-data. The JSON names match the
// form field names and are used in validation messages.
type UploadRequest struct {
	Type          UploadType `json:"upload_type" validate:"required,oneof=single chapter_wise"`
	BoardID       int        `json:"board_id" validate:"required,gt=0"`
	ClassID       int        `json:"class_id" validate:"required,gt=0"`
	SubjectID     int        `json:"subject_id" validate:"required,gt=0"`
	ChapterNumber int        `json:"chapter_number" validate:"required_if=Type chapter_wise,gte=0"`
	FileName      string     `json:"file" validate:"notblank"`
	File          io.Reader  `json:"-" validate:"required"`
}
