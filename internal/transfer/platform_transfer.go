package transfer

type FacebookPostResponse struct {
	ID     string `json:"id"`
	PostID string `json:"post_id"`
}

type FacebookErrorResponse struct {
	Error struct {
		Message      string `json:"message"`
		Type         string `json:"type"`
		Code         int    `json:"code"`
		ErrorSubcode int    `json:"error_subcode"`
		FbtraceID    string `json:"fbtrace_id"`
	} `json:"error"`
}

type InstagramContainerResponse struct {
	ID string `json:"id"`
}

type InstagramPublishResponse struct {
	ID string `json:"id"`
}

type LinkedinPostResponse struct {
	ID string `json:"id"`
}

type LinkedinErrorResponse struct {
	Message          string `json:"message"`
	ServiceErrorCode int    `json:"serviceErrorCode"`
	Status           int    `json:"status"`
}
