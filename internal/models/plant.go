package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	LightFullSun      = "Full Sun"
	LightPartialShade = "Partial Shade"
	LightFullShade    = "Full Shade"
)

const (
	WaterLow    = "Low"
	WaterMedium = "Medium"
	WaterHigh   = "High"
)

const (
	SeasonSpring = "Spring"
	SeasonSummer = "Summer"
	SeasonFall   = "Fall"
	SeasonWinter = "Winter"
)

const (
	CareLevelBeginner = "Beginner"
	CareLevelAverage  = "Average"
	CareLevelExpert   = "Expert"
)

const (
	LocationIndoor  = "Indoor"
	LocationOutdoor = "Outdoor"
	LocationBoth    = "Both"
)

const (
	CatSafe      = "Safe for Cats"
	CatPoisonous = "Poisonous for Cats"
	DogSafe      = "Safe for Dogs"
	DogPoisonous = "Poisonous for Dogs"
)

type Plant struct {
	ID               string    `gorm:"primaryKey" json:"id"`
	Name             string    `gorm:"not null" json:"name"`
	BotanicalName    string    `gorm:"not null" json:"botanicalName"`
	Description      string    `json:"description,omitempty"`
	LightNeed        string    `gorm:"not null" json:"lightNeed"`
	WaterNeed        string    `gorm:"not null" json:"waterNeed"`
	FertiliserSeason []string  `gorm:"serializer:json" json:"fertiliserSeason,omitempty"`
	CatPoisonous     string    `json:"catPoisonous,omitempty"`
	DogPoisonous     string    `json:"dogPoisonous,omitempty"`
	CareLevel        string    `json:"careLevel,omitempty"`
	Location         string    `json:"location,omitempty"`
	Humidity         string    `json:"humidity,omitempty"`
	Temperature      string    `json:"temperature,omitempty"`
	AirDraft         string    `gorm:"column:air_draft_intolerance" json:"airDraftIntolerance,omitempty"`
	ImageURL         string    `gorm:"column:image_url" json:"imageUrl,omitempty"`
	IsFavourite      bool      `gorm:"not null;default:false" json:"isFavourite"`
	CreatedAt        time.Time `json:"-"`
	UpdatedAt        time.Time `json:"-"`
}

// BeforeCreate assigns the identity server-side so a client can never
// predict or choose an id before the store confirms the record.
func (plant *Plant) BeforeCreate(tx *gorm.DB) error {
	if plant.ID == "" {
		plant.ID = uuid.NewString()
	}
	return nil
}
