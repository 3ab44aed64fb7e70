package model

const (
	ContentTypeVideo    = "video"
	ContentTypeDocument = "document"
)

// ContentItem is one unit of course material (a lecture video or a document).
// swagger:model ContentItem
type ContentItem struct {
	UUIDBase
	CourseID    string `gorm:"type:varchar(36);index;not null" json:"courseId"`
	SectionID   string `gorm:"type:varchar(36)" json:"sectionId,omitempty"`
	Type        string `gorm:"size:50;not null" json:"type"` // video, document
	Title       string `gorm:"size:255" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Position    int    `gorm:"default:1" json:"position"`
	DurationSec *int   `json:"durationSec,omitempty"`
	CreatedBy   string `gorm:"type:varchar(36)" json:"createdBy,omitempty"`
}

func (ContentItem) TableName() string {
	return "content_item"
}

// DocumentAsset points at the uploaded file backing a document content item.
// swagger:model DocumentAsset
type DocumentAsset struct {
	UUIDBase
	ContentID string `gorm:"type:varchar(36);index;not null" json:"contentId"`
	URI       string `gorm:"size:512;not null" json:"uri"`
}

func (DocumentAsset) TableName() string {
	return "document_asset"
}

// MediaAsset points at the uploaded video backing a video content item.
// swagger:model MediaAsset
type MediaAsset struct {
	UUIDBase
	ContentID string `gorm:"type:varchar(36);index;not null" json:"contentId"`
	URI       string `gorm:"size:512;not null" json:"uri"`
}

func (MediaAsset) TableName() string {
	return "media_asset"
}
