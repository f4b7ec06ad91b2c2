package dbmodels

// Product defines one financing product's workflow: an ordered list of step
// definitions resolved by key. Version increments on every edit; in-flight
// applications carry the version they were created against.
type Product struct {
	BaseModel
	Name        string
	Description string
	Version     int  `gorm:"default:1"`
	Active      bool `gorm:"index"`
	Steps       StepDefinitions `gorm:"type:jsonb"`
}
