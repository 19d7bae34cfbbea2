package domain

// DefaultMaxParticipants is applied when a catalog entry omits a capacity
const DefaultMaxParticipants = 20

// Activity is an extracurricular offering with a fixed capacity
type Activity struct {
	BaseModel
	Name            string          `gorm:"type:varchar(255);not null;uniqueIndex:uq_activities_name" json:"name"`
	Description     string          `gorm:"type:text" json:"description"`
	Schedule        string          `gorm:"type:varchar(255)" json:"schedule"`
	MaxParticipants int             `gorm:"not null;default:20" json:"maxParticipants"`
	Participations  []Participation `gorm:"foreignKey:ActivityID" json:"-"`
}

// TableName specifies the table name for Activity
func (Activity) TableName() string {
	return "activities"
}

// IsFull reports whether count participations leave no room for another one
func (a *Activity) IsFull(count int64) bool {
	return count >= int64(a.MaxParticipants)
}
