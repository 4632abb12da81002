package domain

import "time"

// AgeAt computes the whole elapsed calendar years between birthDate and now.
// Given a fixed now it is deterministic; a birth date in the future yields a
// negative age, which USDAnnualFee maps to the top tier.
func AgeAt(birthDate, now time.Time) int {
	years := now.Year() - birthDate.Year()
	// Subtract one year until the birthday has passed in now's year.
	anniversary := birthDate.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}

// USDAnnualFee maps an age to its annual fee bracket. Boundaries are inclusive.
func USDAnnualFee(age int) int {
	switch {
	case age >= 0 && age <= 50:
		return 15
	case age >= 51 && age <= 70:
		return 20
	case age >= 71 && age <= 90:
		return 25
	default:
		return 30
	}
}
