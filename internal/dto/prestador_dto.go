package dto

// PrestadorFilter holds the query string of GET /prestadores. Order names a
// sortable field, optionally prefixed with "-" for descending order.
type PrestadorFilter struct {
	Limit int64  `form:"limit" binding:"omitempty,min=0"`
	Skip  int64  `form:"skip"  binding:"omitempty,min=0"`
	Order string `form:"order"`
}
