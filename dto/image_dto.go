package dto

// UploadImageQuery carries the optional associations and naming options
// for an image upload.
type UploadImageQuery struct {
	ProjectID *string `form:"projectId"`
	TaskID    *string `form:"taskId"`
	Name      *string `form:"name"`
	Folder    *string `form:"folder"`
}

// UpdateImageRequest patches image metadata; uploader only. ProjectID and
// TaskID are three-state: omitted leaves the association, an empty string
// or null clears it.
type UpdateImageRequest struct {
	Filename  *string          `json:"filename"`
	ProjectID Optional[string] `json:"projectId"`
	TaskID    Optional[string] `json:"taskId"`
}
