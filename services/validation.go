package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"hotel-booking/utils"
)

const dateLayout = "2006-01-02"

const DefaultMaxStayNights = 90

type CreateReservationInput struct {
	RoomID         string `json:"roomId" validate:"required"`
	GuestName      string `json:"guestName" validate:"required,min=2,max=100"`
	GuestEmail     string `json:"guestEmail" validate:"required,email"`
	CheckIn        string `json:"checkIn" validate:"required,datetime=2006-01-02"`
	CheckOut       string `json:"checkOut" validate:"required,datetime=2006-01-02"`
	NumberOfGuests int    `json:"numberOfGuests" validate:"gte=0"`
}

type AvailabilityQueryInput struct {
	RoomID   string `form:"roomId" json:"roomId" validate:"required"`
	CheckIn  string `form:"checkIn" json:"checkIn" validate:"required,datetime=2006-01-02"`
	CheckOut string `form:"checkOut" json:"checkOut" validate:"required,datetime=2006-01-02"`
}

type StayQueryInput struct {
	CheckIn  string `form:"checkIn" json:"checkIn" validate:"required,datetime=2006-01-02"`
	CheckOut string `form:"checkOut" json:"checkOut" validate:"required,datetime=2006-01-02"`
	Capacity int    `form:"capacity" json:"capacity" validate:"gte=0"`
}

// RoomQueryInput filters are optional; a filter that is present must be
// positive.
type RoomQueryInput struct {
	Capacity *int     `form:"capacity" json:"capacity" validate:"omitempty,gt=0"`
	MinPrice *float64 `form:"minPrice" json:"minPrice" validate:"omitempty,gt=0"`
	MaxPrice *float64 `form:"maxPrice" json:"maxPrice" validate:"omitempty,gt=0"`
}

type ContactInput struct {
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"max=50"`
	Subject string `json:"subject" validate:"required,max=255"`
	Message string `json:"message" validate:"required,max=5000"`
}

// Validator checks request shape with go-playground/validator and then
// the booking rules that depend on the current date.
type Validator struct {
	validate      *validator.Validate
	clock         utils.Clock
	loc           *time.Location
	maxStayNights int
}

func NewValidator(clock utils.Clock, loc *time.Location, maxStayNights int) *Validator {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	if loc == nil {
		loc = time.Local
	}
	if maxStayNights <= 0 {
		maxStayNights = DefaultMaxStayNights
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	return &Validator{validate: v, clock: clock, loc: loc, maxStayNights: maxStayNights}
}

func (v *Validator) Today() time.Time {
	return utils.Today(v.clock, v.loc)
}

// Struct runs the tag rules of s and adds every violation to ve.
func (v *Validator) Struct(ve *ValidationError, s interface{}) {
	err := v.validate.Struct(s)
	if err == nil {
		return
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		ve.Add("body", err.Error())
		return
	}
	for _, fe := range verrs {
		ve.Add(fe.Field(), fieldMessage(fe))
	}
}

// Stay parses the dates of a stay and applies the ordering, past-date and
// maximum stay rules. Fields that already failed shape checks are skipped.
func (v *Validator) Stay(ve *ValidationError, checkInRaw, checkOutRaw string) (time.Time, time.Time) {
	var checkIn, checkOut time.Time
	var inOK, outOK bool

	if !ve.Has("checkIn") {
		if t, err := time.Parse(dateLayout, checkInRaw); err == nil {
			checkIn, inOK = t, true
		} else {
			ve.Add("checkIn", "must be a date in YYYY-MM-DD format")
		}
	}
	if !ve.Has("checkOut") {
		if t, err := time.Parse(dateLayout, checkOutRaw); err == nil {
			checkOut, outOK = t, true
		} else {
			ve.Add("checkOut", "must be a date in YYYY-MM-DD format")
		}
	}

	if inOK && checkIn.Before(v.Today()) {
		ve.Add("checkIn", "Check-in date must be today or in the future")
	}
	if inOK && outOK {
		if !checkOut.After(checkIn) {
			ve.Add("checkOut", "Check-out date must be after check-in date")
		} else if Nights(checkIn, checkOut) > v.maxStayNights {
			ve.Add("checkOut", fmt.Sprintf("Maximum stay is %d nights", v.maxStayNights))
		}
	}
	return checkIn, checkOut
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return "must not be negative"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	}
	return "is invalid"
}
