package job

import "time"

type Job struct {
	ID          int64
	CreateDate  time.Time
	Company     string
	JobPosition string
	Link        string
	StatusID    int
}

type Meta struct {
	ID    int64
	JobID int64
	Label string
	Value string
}
