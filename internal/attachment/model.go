// Package attachment provides file attachments tied to rivers.
package attachment

import (
	"time"
)

// Attachment represents a file stored for a river.
type Attachment struct {
	ID          int64     `db:"id" json:"id,omitempty"`
	RiverID     int64     `db:"river_id" json:"river_id"`
	FileName    string    `db:"file_name" json:"file_name"`
	FilePath    string    `db:"file_path" json:"file_path"`
	FileType    string    `db:"file_type" json:"file_type,omitempty"`
	FileSize    int64     `db:"file_size" json:"file_size,omitempty"`
	Description string    `db:"description" json:"description,omitempty"`
	UploadDate  time.Time `db:"upload_date" json:"upload_date,omitempty"`
}
