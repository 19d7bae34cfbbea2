package domain

// Student is identified by email and created lazily on first signup
type Student struct {
	BaseModel
	Email          string          `gorm:"type:varchar(255);not null;uniqueIndex:uq_students_email" json:"email"`
	Name           *string         `gorm:"type:varchar(255)" json:"name,omitempty"`
	Grade          *int            `json:"grade,omitempty"`
	ClassSection   *string         `gorm:"type:varchar(10)" json:"classSection,omitempty"`
	Participations []Participation `gorm:"foreignKey:StudentID" json:"-"`
}

// TableName specifies the table name for Student
func (Student) TableName() string {
	return "students"
}
