package request

// ListParams are the shared offset/limit query parameters for list endpoints.
// "from" is a zero-based offset, "size" the page size.
type ListParams struct {
	From int `form:"from,default=0" binding:"omitempty,gte=0"`
	Size int `form:"size,default=10" binding:"omitempty,gte=1"`
}

// ByIDRequest is a common struct for endpoints that take an ID path parameter.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}
