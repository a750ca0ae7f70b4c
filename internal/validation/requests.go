package validation

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"fit1-backend/internal/models"
	"fit1-backend/internal/tracking"
)

// ProfileInput is the UserDetails payload, either on its own (PUT
// /user/details) or attached to a tracking submission.
type ProfileInput struct {
	Height        float64 `json:"height" validate:"gt=0,lte=300"`
	Weight        float64 `json:"weight" validate:"gt=0,lte=500"`
	Age           float64 `json:"age" validate:"gt=0,lte=150"`
	Gender        string  `json:"gender" validate:"required,oneof=male female other"`
	Goal          string  `json:"goal" validate:"required,oneof=weight_loss muscle_gain maintenance general_fitness"`
	ActivityLevel string  `json:"activityLevel" validate:"required,oneof=sedentary lightly_active moderately_active very_active extremely_active"`
}

func (p ProfileInput) Profile() models.Profile {
	return models.Profile{
		Height:        p.Height,
		Weight:        p.Weight,
		Age:           p.Age,
		Gender:        p.Gender,
		Goal:          p.Goal,
		ActivityLevel: p.ActivityLevel,
	}
}

type FoodRequest struct {
	Food        string        `json:"food" validate:"notblank,max=2000"`
	Time        string        `json:"time" validate:"required,timeofday"`
	Date        string        `json:"date" validate:"required,isodate"`
	UserDetails *ProfileInput `json:"userDetails"`
}

// Intake returns the normalized entry. Call only after Validate succeeded.
func (r FoodRequest) Intake() models.FoodIntake {
	date, _ := tracking.NormalizeDate(r.Date)
	at, _ := tracking.NormalizeTime(r.Time)
	return models.FoodIntake{Food: strings.TrimSpace(r.Food), Time: at, Date: date}
}

type WaterRequest struct {
	Amount      float64       `json:"amount" validate:"gt=0,lte=10000"`
	Type        string        `json:"type" validate:"omitempty,oneof=water sparkling_water flavored_water"`
	Time        string        `json:"time" validate:"required,timeofday"`
	Date        string        `json:"date" validate:"required,isodate"`
	UserDetails *ProfileInput `json:"userDetails"`
}

func (r WaterRequest) Intake() models.WaterIntake {
	date, _ := tracking.NormalizeDate(r.Date)
	at, _ := tracking.NormalizeTime(r.Time)
	kind := r.Type
	if kind == "" {
		kind = models.WaterTypePlain
	}
	return models.WaterIntake{Amount: r.Amount, Type: kind, Time: at, Date: date}
}

type MeasurementsInput struct {
	Waist  *float64 `json:"waist" validate:"omitempty,gt=0,lte=500"`
	Chest  *float64 `json:"chest" validate:"omitempty,gt=0,lte=500"`
	Arms   *float64 `json:"arms" validate:"omitempty,gt=0,lte=500"`
	Thighs *float64 `json:"thighs" validate:"omitempty,gt=0,lte=500"`
	Hips   *float64 `json:"hips" validate:"omitempty,gt=0,lte=500"`
}

type WeightRequest struct {
	Weight       float64            `json:"weight" validate:"gt=0,lte=500"`
	Date         string             `json:"date" validate:"required,isodate"`
	BodyFat      *float64           `json:"bodyFat" validate:"omitempty,gte=0,lte=100"`
	BMI          *float64           `json:"bmi" validate:"omitempty,gt=0,lte=200"`
	Notes        string             `json:"notes" validate:"max=1000"`
	Measurements *MeasurementsInput `json:"measurements"`
	UserDetails  *ProfileInput      `json:"userDetails"`
}

func (r WeightRequest) Entry() models.WeightEntry {
	date, _ := tracking.NormalizeDate(r.Date)
	entry := models.WeightEntry{
		Date:    date,
		Weight:  r.Weight,
		BodyFat: r.BodyFat,
		BMI:     r.BMI,
		Notes:   strings.TrimSpace(r.Notes),
	}
	if m := r.Measurements; m != nil {
		entry.Measurements = &models.Measurements{
			Waist: m.Waist, Chest: m.Chest, Arms: m.Arms, Thighs: m.Thighs, Hips: m.Hips,
		}
	}
	return entry
}

type SleepRequest struct {
	StartTime   time.Time     `json:"startTime" validate:"required"`
	EndTime     time.Time     `json:"endTime" validate:"required"`
	Quality     int           `json:"quality" validate:"gte=1,lte=10"`
	Notes       string        `json:"notes" validate:"max=1000"`
	Tags        []string      `json:"tags" validate:"max=20,dive,notblank,max=40"`
	UserDetails *ProfileInput `json:"userDetails"`
}

func (r SleepRequest) Entry() models.SleepEntry {
	minutes := tracking.SleepDuration(r.StartTime, r.EndTime)
	tags := make([]string, 0, len(r.Tags))
	for _, tag := range r.Tags {
		tags = append(tags, strings.TrimSpace(tag))
	}
	return models.SleepEntry{
		Date:      r.EndTime.UTC().Format(tracking.DateLayout),
		StartTime: r.StartTime.UTC(),
		EndTime:   r.EndTime.UTC(),
		Duration:  minutes,
		Cycles:    tracking.SleepCycles(minutes),
		Quality:   r.Quality,
		Notes:     strings.TrimSpace(r.Notes),
		Tags:      tags,
	}
}

func validateSleepWindow(sl validator.StructLevel) {
	req := sl.Current().Interface().(SleepRequest)
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return
	}
	if !req.EndTime.After(req.StartTime) {
		sl.ReportError(req.EndTime, "endTime", "EndTime", "gtfield", "startTime")
		return
	}
	if req.EndTime.Sub(req.StartTime) > 24*time.Hour {
		sl.ReportError(req.EndTime, "endTime", "EndTime", "maxwindow", "")
	}
}
