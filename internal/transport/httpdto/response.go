package httpdto

// DetailResponse carries a single human readable message.
type DetailResponse struct {
	Detail string `json:"detail"`
}

func NewDetailResponse(detail string) DetailResponse {
	return DetailResponse{Detail: detail}
}

// Page is a limit/offset page. Next and Previous are absolute URLs or null.
type Page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}
