package services

import "mirrormirror/pkg/utils"

type AstrologyServiceInterface interface {
	Analyze(birthdate string) (zodiac string, element string)
	Hint(element string) string
}

type AstrologyService struct{}

func NewAstrologyService() AstrologyServiceInterface {
	return &AstrologyService{}
}

type zodiacRange struct {
	sign                                   string
	startMonth, startDay, endMonth, endDay int
}

var zodiacSigns = []zodiacRange{
	{"Capricorn", 12, 22, 1, 19},
	{"Aquarius", 1, 20, 2, 18},
	{"Pisces", 2, 19, 3, 20},
	{"Aries", 3, 21, 4, 19},
	{"Taurus", 4, 20, 5, 20},
	{"Gemini", 5, 21, 6, 20},
	{"Cancer", 6, 21, 7, 22},
	{"Leo", 7, 23, 8, 22},
	{"Virgo", 8, 23, 9, 22},
	{"Libra", 9, 23, 10, 22},
	{"Scorpio", 10, 23, 11, 21},
	{"Sagittarius", 11, 22, 12, 21},
}

var zodiacElements = map[string]string{
	"Aries": "Fire", "Leo": "Fire", "Sagittarius": "Fire",
	"Taurus": "Earth", "Virgo": "Earth", "Capricorn": "Earth",
	"Gemini": "Air", "Libra": "Air", "Aquarius": "Air",
	"Cancer": "Water", "Scorpio": "Water", "Pisces": "Water",
}

var elementHints = map[string]string{
	"Fire":  "You are passionate, energetic, and courageous.",
	"Earth": "You are grounded, practical, and reliable.",
	"Air":   "You are intellectual, communicative, and curious.",
	"Water": "You are intuitive, empathetic, and emotional.",
	"Void":  "Your star sign is undefined. Unique paths await you.",
}

func (a *AstrologyService) Analyze(birthdate string) (string, string) {
	t, err := utils.ParseBirthdate(birthdate)
	if err != nil {
		return "Unknown", "Void"
	}
	month, day := int(t.Month()), t.Day()
	for _, z := range zodiacSigns {
		if (month == z.startMonth && day >= z.startDay) ||
			(month == z.endMonth && day <= z.endDay) {
			return z.sign, zodiacElements[z.sign]
		}
	}
	return "Unknown", "Void"
}

func (a *AstrologyService) Hint(element string) string {
	if hint, ok := elementHints[element]; ok {
		return hint
	}
	return elementHints["Void"]
}
