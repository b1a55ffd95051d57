package models

import (
	"time"
)

// Attachment types accepted on messages.
const (
	AttachmentImage = "image"
	AttachmentFile  = "file"
	AttachmentGif   = "gif"
)

// Message represents a single chat post. Username is the author's display
// name captured at creation time; it is not kept in sync with later renames.
// The attachment triple is all-or-nothing: either AttachmentUrl and
// AttachmentType are both set, or every attachment field is null.
type Message struct {
	ID             int64      `gorm:"primaryKey" json:"id"`
	Content        string     `gorm:"type:text" json:"content"`
	Username       string     `gorm:"not null" json:"username"`
	UserID         int64      `gorm:"not null;index" json:"userId"`
	AttachmentURL  *string    `json:"attachmentUrl"`
	AttachmentType *string    `json:"attachmentType"`
	AttachmentName *string    `json:"attachmentName"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      *time.Time `json:"updatedAt"`
}

// ValidAttachmentType reports whether t is one of the accepted types.
func ValidAttachmentType(t string) bool {
	return t == AttachmentImage || t == AttachmentFile || t == AttachmentGif
}
