package dto

type JobMetaResponse struct {
	ID    int64  `json:"id"`
	JobID int64  `json:"job_id"`
	Label string `json:"label"`
	Value string `json:"value"`
}

type JobDetailResponse struct {
	Job  JobResponse       `json:"job"`
	Meta []JobMetaResponse `json:"meta"`
}
