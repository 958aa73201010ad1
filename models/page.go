package models

// RowPage is one page of server row changes.
type RowPage struct {
	Rows                []ServerRow `json:"rows"`
	DataETag            string      `json:"dataETag"`
	WebSafeResumeCursor string      `json:"webSafeResumeCursor,omitempty"`
	HasMoreResults      bool        `json:"hasMoreResults"`
}

// RowList is the body of a push request.
type RowList struct {
	Rows     []ServerRow `json:"rows"`
	DataETag string      `json:"dataETag"`
}
