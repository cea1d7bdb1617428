package models

// Course is a taught course identified by its short code. Teachers and TAs
// are member email lists; membership is what scopes course listings.
//
// TotalClasses is a legacy audit counter incremented once per recorded
// session. Statistics never read it; the session table is the authoritative
// source for "classes held".
type Course struct {
	Code         string   `json:"course_code"`
	Teachers     []string `json:"Teacher"`
	TAs          []string `json:"TA"`
	TotalClasses int      `json:"total_classes"`
}

// HasMember reports whether the email is a teacher or TA of the course.
func (c *Course) HasMember(email string) bool {
	for _, t := range c.Teachers {
		if t == email {
			return true
		}
	}
	for _, ta := range c.TAs {
		if ta == email {
			return true
		}
	}
	return false
}
