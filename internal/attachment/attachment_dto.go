package attachment

type CreateAttachmentRequest struct {
	EntityType  string `json:"entity_type" binding:"required"`
	EntityID    string `json:"entity_id" binding:"required,uuid"`
	Category    string `json:"category" binding:"required"`
	FileName    string `json:"file_name" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required,max=100"`
	// Content is base64 in the JSON body; multipart uploads carry the bytes
	// in the file part instead.
	Content string `json:"content"`
}

type ListAttachmentsFilterRequest struct {
	EntityType string `form:"entity_type" binding:"omitempty"`
	EntityID   string `form:"entity_id" binding:"omitempty,uuid"`
}

type AttachmentResponse struct {
	ID          string `json:"id"`
	EntityType  string `json:"entity_type"`
	EntityID    string `json:"entity_id"`
	Category    string `json:"category"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	SizeBytes   int    `json:"size_bytes"`
	CreatedAt   string `json:"created_at"`
}
