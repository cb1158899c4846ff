package model

import "time"

// CommentExport is the top-level JSON structure written by `commenter generate`.
type CommentExport struct {
	TemplateID   string             `json:"template_id"`
	TemplateName string             `json:"template_name"`
	GeneratedAt  time.Time          `json:"generated_at"`
	Comments     []GeneratedComment `json:"comments"`
	MissingData  []MissingStudent   `json:"missing_data"`
}

// ExportSummary describes a saved export without its payload.
type ExportSummary struct {
	ID           int64     `json:"id"`
	TemplateID   string    `json:"template_id"`
	TemplateName string    `json:"template_name"`
	GeneratedAt  time.Time `json:"generated_at"`
	CommentCount int       `json:"comment_count"`
	MissingCount int       `json:"missing_count"`
}
