package candidate

// Course is a knowledge-base course entry
type Course struct {
	Code    string  `json:"code"`
	Name    string  `json:"name"`
	Outline string  `json:"outline"`
	Level   string  `json:"level"`
	Link    string  `json:"link"`
	Heat    float64 `json:"heat,omitempty"`
}

// MajorCourse pairs a course with the major it is listed under
type MajorCourse struct {
	Major  string
	Course Course
}

// Practice is a knowledge-base practice resource (competition, project, volunteer work)
type Practice struct {
	Name string  `json:"name"`
	Desc string  `json:"desc"`
	Type string  `json:"type"`
	Link string  `json:"link"`
	Heat float64 `json:"heat,omitempty"`
}

// JobPosting is a knowledge-base job description
type JobPosting struct {
	Company  string   `json:"company"`
	Position string   `json:"position"`
	JD       string   `json:"jd"`
	Skills   []string `json:"skills"`
	Link     string   `json:"link"`
	Heat     float64  `json:"heat,omitempty"`
}

// Advisor is a knowledge-base faculty advisor
type Advisor struct {
	Name       string  `json:"name"`
	Department string  `json:"department"`
	Research   string  `json:"research"`
	Homepage   string  `json:"homepage"`
	Heat       float64 `json:"heat,omitempty"`
}

// Repository is a record from the repository feed
type Repository struct {
	FullName     string `json:"full_name"`
	Owner        string `json:"owner,omitempty"`
	Name         string `json:"name,omitempty"`
	Description  string `json:"description"`
	Stars        int    `json:"stargazers_count"`
	Language     string `json:"language"`
	HTMLURL      string `json:"html_url"`
	MatchedTopic string `json:"matched_interest,omitempty"`
}

// Key returns the owner/name identifier of the repository
func (r Repository) Key() string {
	if r.FullName != "" {
		return r.FullName
	}
	if r.Owner == "" && r.Name == "" {
		return ""
	}
	return r.Owner + "/" + r.Name
}
