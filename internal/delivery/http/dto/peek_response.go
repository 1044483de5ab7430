package dto

type PeekResponse struct {
	Title string `json:"title"`
	Site  string `json:"site"`
	URL   string `json:"url"`
}
