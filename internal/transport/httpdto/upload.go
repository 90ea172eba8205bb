package httpdto

type PresignUploadRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
}

type PresignUploadResponse struct {
	UploadURL     string            `json:"upload_url"`
	Headers       map[string]string `json:"headers,omitempty"`
	AttachmentURL string            `json:"attachment_url"`
}
