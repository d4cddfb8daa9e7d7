package services

import (
	"errors"
	"strings"

	"github.com/daemroni/leaflove/internal/models"
)

var (
	ErrPlantNameRequired          = errors.New("plant name is required")
	ErrPlantBotanicalNameRequired = errors.New("botanical name is required")
	ErrPlantLightNeedInvalid      = errors.New("light need is missing or invalid")
	ErrPlantWaterNeedInvalid      = errors.New("water need is missing or invalid")
	ErrPlantSeasonInvalid         = errors.New("fertiliser season is invalid")
	ErrPlantOptionInvalid         = errors.New("optional plant attribute is invalid")
)

var (
	validLightNeeds = map[string]bool{
		models.LightFullSun:      true,
		models.LightPartialShade: true,
		models.LightFullShade:    true,
	}
	validWaterNeeds = map[string]bool{
		models.WaterLow:    true,
		models.WaterMedium: true,
		models.WaterHigh:   true,
	}
	validSeasons = map[string]bool{
		models.SeasonSpring: true,
		models.SeasonSummer: true,
		models.SeasonFall:   true,
		models.SeasonWinter: true,
	}
	validCareLevels = map[string]bool{
		models.CareLevelBeginner: true,
		models.CareLevelAverage:  true,
		models.CareLevelExpert:   true,
	}
	validLocations = map[string]bool{
		models.LocationIndoor:  true,
		models.LocationOutdoor: true,
		models.LocationBoth:    true,
	}
	validHumidities   = map[string]bool{"50%": true, "60%": true, "70%": true}
	validTemperatures = map[string]bool{"10-20°C": true, "20-30°C": true}
	validAirDrafts    = map[string]bool{"Yes": true, "No": true}
	validCatSafety    = map[string]bool{models.CatSafe: true, models.CatPoisonous: true}
	validDogSafety    = map[string]bool{models.DogSafe: true, models.DogPoisonous: true}
)

// PlantInput is a full plant payload built field by field. Required
// fields must be present and valid; optional fields may be empty but
// never hold values outside their catalog.
type PlantInput struct {
	Name             string   `json:"name"`
	BotanicalName    string   `json:"botanicalName"`
	Description      string   `json:"description"`
	LightNeed        string   `json:"lightNeed"`
	WaterNeed        string   `json:"waterNeed"`
	FertiliserSeason []string `json:"fertiliserSeason"`
	CatPoisonous     string   `json:"catPoisonous"`
	DogPoisonous     string   `json:"dogPoisonous"`
	CareLevel        string   `json:"careLevel"`
	Location         string   `json:"location"`
	Humidity         string   `json:"humidity"`
	Temperature      string   `json:"temperature"`
	AirDraft         string   `json:"airDraftIntolerance"`
	ImageURL         string   `json:"imageUrl"`
	IsFavourite      bool     `json:"isFavourite"`
}

func (input PlantInput) Validate() error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrPlantNameRequired
	}
	if strings.TrimSpace(input.BotanicalName) == "" {
		return ErrPlantBotanicalNameRequired
	}
	if !validLightNeeds[input.LightNeed] {
		return ErrPlantLightNeedInvalid
	}
	if !validWaterNeeds[input.WaterNeed] {
		return ErrPlantWaterNeedInvalid
	}
	for _, season := range input.FertiliserSeason {
		if !validSeasons[season] {
			return ErrPlantSeasonInvalid
		}
	}
	if err := validateOptional(input.CatPoisonous, validCatSafety); err != nil {
		return err
	}
	if err := validateOptional(input.DogPoisonous, validDogSafety); err != nil {
		return err
	}
	if err := validateOptional(input.CareLevel, validCareLevels); err != nil {
		return err
	}
	if err := validateOptional(input.Location, validLocations); err != nil {
		return err
	}
	if err := validateOptional(input.Humidity, validHumidities); err != nil {
		return err
	}
	if err := validateOptional(input.Temperature, validTemperatures); err != nil {
		return err
	}
	return validateOptional(input.AirDraft, validAirDrafts)
}

// ToPlant materializes a validated input as a new plant record. The id
// stays empty until the store assigns one.
func (input PlantInput) ToPlant() models.Plant {
	seasons := input.FertiliserSeason
	if seasons == nil {
		seasons = []string{}
	}
	return models.Plant{
		Name:             strings.TrimSpace(input.Name),
		BotanicalName:    strings.TrimSpace(input.BotanicalName),
		Description:      strings.TrimSpace(input.Description),
		LightNeed:        input.LightNeed,
		WaterNeed:        input.WaterNeed,
		FertiliserSeason: seasons,
		CatPoisonous:     input.CatPoisonous,
		DogPoisonous:     input.DogPoisonous,
		CareLevel:        input.CareLevel,
		Location:         input.Location,
		Humidity:         input.Humidity,
		Temperature:      input.Temperature,
		AirDraft:         input.AirDraft,
		ImageURL:         strings.TrimSpace(input.ImageURL),
		IsFavourite:      input.IsFavourite,
	}
}

func validateOptional(value string, catalog map[string]bool) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	if !catalog[value] {
		return ErrPlantOptionInvalid
	}
	return nil
}

// PlantPatch is a partial plant update. Nil fields are left unchanged;
// present fields are validated against the same catalogs as a full
// payload before anything is written.
type PlantPatch struct {
	Name             *string   `json:"name"`
	BotanicalName    *string   `json:"botanicalName"`
	Description      *string   `json:"description"`
	LightNeed        *string   `json:"lightNeed"`
	WaterNeed        *string   `json:"waterNeed"`
	FertiliserSeason *[]string `json:"fertiliserSeason"`
	CatPoisonous     *string   `json:"catPoisonous"`
	DogPoisonous     *string   `json:"dogPoisonous"`
	CareLevel        *string   `json:"careLevel"`
	Location         *string   `json:"location"`
	Humidity         *string   `json:"humidity"`
	Temperature      *string   `json:"temperature"`
	AirDraft         *string   `json:"airDraftIntolerance"`
	ImageURL         *string   `json:"imageUrl"`
	IsFavourite      *bool     `json:"isFavourite"`
}

// Apply merges the patch into a copy of the plant and validates the
// result, so a patch can never leave a stored plant in a state a full
// submission could not produce.
func (patch PlantPatch) Apply(plant models.Plant) (models.Plant, error) {
	if patch.Name != nil {
		plant.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.BotanicalName != nil {
		plant.BotanicalName = strings.TrimSpace(*patch.BotanicalName)
	}
	if patch.Description != nil {
		plant.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.LightNeed != nil {
		plant.LightNeed = *patch.LightNeed
	}
	if patch.WaterNeed != nil {
		plant.WaterNeed = *patch.WaterNeed
	}
	if patch.FertiliserSeason != nil {
		plant.FertiliserSeason = *patch.FertiliserSeason
	}
	if patch.CatPoisonous != nil {
		plant.CatPoisonous = *patch.CatPoisonous
	}
	if patch.DogPoisonous != nil {
		plant.DogPoisonous = *patch.DogPoisonous
	}
	if patch.CareLevel != nil {
		plant.CareLevel = *patch.CareLevel
	}
	if patch.Location != nil {
		plant.Location = *patch.Location
	}
	if patch.Humidity != nil {
		plant.Humidity = *patch.Humidity
	}
	if patch.Temperature != nil {
		plant.Temperature = *patch.Temperature
	}
	if patch.AirDraft != nil {
		plant.AirDraft = *patch.AirDraft
	}
	if patch.ImageURL != nil {
		plant.ImageURL = strings.TrimSpace(*patch.ImageURL)
	}
	if patch.IsFavourite != nil {
		plant.IsFavourite = *patch.IsFavourite
	}

	check := PlantInput{
		Name:             plant.Name,
		BotanicalName:    plant.BotanicalName,
		LightNeed:        plant.LightNeed,
		WaterNeed:        plant.WaterNeed,
		FertiliserSeason: plant.FertiliserSeason,
		CatPoisonous:     plant.CatPoisonous,
		DogPoisonous:     plant.DogPoisonous,
		CareLevel:        plant.CareLevel,
		Location:         plant.Location,
		Humidity:         plant.Humidity,
		Temperature:      plant.Temperature,
		AirDraft:         plant.AirDraft,
	}
	if err := check.Validate(); err != nil {
		return models.Plant{}, err
	}
	return plant, nil
}
