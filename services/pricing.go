package services

import (
	"math"
	"time"
)

// Nights bills any stay, however short, as at least one night.
func Nights(checkIn, checkOut time.Time) int {
	days := math.Ceil(checkOut.Sub(checkIn).Hours() / 24)
	if days < 1 {
		return 1
	}
	return int(days)
}

// TotalPrice is nightlyRate * Nights, rounded half away from zero to cents.
func TotalPrice(nightlyRate float64, checkIn, checkOut time.Time) float64 {
	return roundCents(nightlyRate * float64(Nights(checkIn, checkOut)))
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
