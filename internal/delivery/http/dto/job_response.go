package dto

type JobResponse struct {
	ID          int64  `json:"id"`
	CreateDate  string `json:"create_date"`
	Company     string `json:"company"`
	JobPosition string `json:"job_position"`
	Link        string `json:"link"`
	StatusID    int    `json:"status_id"`
	Status      string `json:"status"`
}

type JobPageResponse struct {
	Items      []JobResponse `json:"items"`
	Page       int           `json:"page"`
	TotalPages int           `json:"total_pages"`
	Total      int           `json:"total"`
	HasPrev    bool          `json:"has_prev"`
	HasNext    bool          `json:"has_next"`
}
