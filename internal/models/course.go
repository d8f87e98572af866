package models

type Course struct {
	BaseModel `bson:",inline"`
	Code      string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_courses_live_code,where:deleted_at IS NULL" json:"code" bson:"code"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name" bson:"name"`
	Credits   int       `gorm:"default:0" json:"credits" bson:"credits"`
	Students  []Student `gorm:"foreignKey:CourseID" json:"students,omitempty" bson:"-"`
}

// Clone returns a copy that shares no slices or pointers with c.
func (c *Course) Clone() Course {
	clone := *c
	if c.Students != nil {
		clone.Students = make([]Student, len(c.Students))
		for i := range c.Students {
			clone.Students[i] = c.Students[i].Clone()
		}
	}
	return clone
}
