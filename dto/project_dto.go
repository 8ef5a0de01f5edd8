package dto

// CreateProjectRequest creates a project; the authenticated user becomes
// its owner. Key format (uppercase letters and digits only) is enforced
// by the service on top of the length bindings.
type CreateProjectRequest struct {
	Name        string  `json:"name" binding:"required,min=3"`
	Key         string  `json:"key" binding:"required,min=2,max=10"`
	Description *string `json:"description"`
}

// UpdateProjectRequest patches project fields; absent fields are left
// unchanged.
type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// AddMemberRequest adds a user to the project's member set, resolved by
// email.
type AddMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
}
