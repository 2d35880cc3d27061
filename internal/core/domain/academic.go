package domain

// Faculty is an academic faculty students can enrol in.
type Faculty struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Years int    `json:"years"`
}

// Department belongs to exactly one faculty.
type Department struct {
	ID        int    `json:"id"`
	FacultyID int    `json:"facultyId"`
	Name      string `json:"name"`
}
