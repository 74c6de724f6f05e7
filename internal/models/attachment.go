package models

type FileAttachment struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Extension   string `json:"extension"`
	Size        string `json:"size"`
	Src         string `json:"src"`
	ContentType string `json:"content_type"`
}

type AudioAttachment struct {
	ID  int    `json:"id"`
	Src string `json:"src"`
}

// Attachment carries exactly one of File or Audio.
type Attachment struct {
	File  *FileAttachment  `json:"file,omitempty"`
	Audio *AudioAttachment `json:"audio,omitempty"`
}
