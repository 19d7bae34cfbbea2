package domain

import (
	"time"

	"github.com/google/uuid"
)

// Participation enrolls one student in one activity.
// The composite unique index is the store-level guard against duplicate enrollments.
type Participation struct {
	BaseModel
	StudentID  uuid.UUID `gorm:"type:varchar(36);not null;index:idx_participations_student_id;uniqueIndex:uq_participations_student_activity" json:"studentId"`
	ActivityID uuid.UUID `gorm:"type:varchar(36);not null;index:idx_participations_activity_id;uniqueIndex:uq_participations_student_activity" json:"activityId"`
	JoinedAt   time.Time `gorm:"not null" json:"joinedAt"`
	Student    Student   `gorm:"foreignKey:StudentID" json:"-"`
	Activity   Activity  `gorm:"foreignKey:ActivityID" json:"-"`
}

// TableName specifies the table name for Participation
func (Participation) TableName() string {
	return "participations"
}
