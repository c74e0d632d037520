package http

// FileURI binds the file id path parameter.
type FileURI struct {
	ID string `uri:"id" binding:"required,uuid"`
}
