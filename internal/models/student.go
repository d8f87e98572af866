package models

type Student struct {
	UUIDModel `bson:",inline"`
	FirstName string `gorm:"type:varchar(255);not null" json:"first_name" bson:"first_name"`
	LastName  string `gorm:"type:varchar(255);not null" json:"last_name" bson:"last_name"`
	Email     string `gorm:"type:varchar(255);not null;uniqueIndex:idx_students_live_email,where:deleted_at IS NULL" json:"email" bson:"email"`
	CourseID  *uint  `gorm:"index" json:"course_id,omitempty" bson:"course_id"`
}

func (s *Student) Clone() Student {
	clone := *s
	if s.CourseID != nil {
		courseID := *s.CourseID
		clone.CourseID = &courseID
	}
	return clone
}
