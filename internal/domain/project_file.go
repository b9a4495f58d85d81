package domain

type FileUploadedBy string

const (
	FileUploadedByClient  FileUploadedBy = "client"
	FileUploadedByCompany FileUploadedBy = "company"
)

// ProjectFile records metadata for a file shared on a project. The bytes live
// in external storage; only the URL is kept here. Files are deliberately not
// part of the project delete cascade.
type ProjectFile struct {
	ID         int32          `json:"id"`
	ProjectID  int32          `json:"project_id"`
	UserID     int32          `json:"user_id"`
	Uploader   *User          `json:"uploader,omitempty"` // populated on fetch
	FileURL    string         `json:"file_url"`
	FileName   string         `json:"file_name"`
	FileType   string         `json:"file_type"`
	FileSize   int64          `json:"file_size,omitempty"`
	UploadedBy FileUploadedBy `json:"uploaded_by"`
	CreatedOn  string         `json:"created_on"`
	UpdatedOn  string         `json:"updated_on"`
}
