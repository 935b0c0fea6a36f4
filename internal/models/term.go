package models

import (
	"fmt"
	"strconv"
	"time"
)

// Season is one of the four academic seasons a term can belong to.
type Season string

const (
	SeasonFall   Season = "Fall"
	SeasonWinter Season = "Winter"
	SeasonSpring Season = "Spring"
	SeasonSummer Season = "Summer"
)

// Registrar term codes are YYYYTT where TT encodes the season.
var seasonSuffixes = map[Season]string{
	SeasonFall:   "15",
	SeasonWinter: "25",
	SeasonSpring: "35",
	SeasonSummer: "45",
}

var suffixSeasons = map[string]Season{
	"15": SeasonFall,
	"25": SeasonWinter,
	"35": SeasonSpring,
	"45": SeasonSummer,
}

// Months the recurring-schedule window opens on for each season.
var seasonAnchors = map[Season]time.Month{
	SeasonSpring: time.January,
	SeasonSummer: time.May,
	SeasonFall:   time.September,
	SeasonWinter: time.December,
}

// ParseSeason validates a case-sensitive season name.
func ParseSeason(s string) (Season, bool) {
	season := Season(s)
	_, ok := seasonSuffixes[season]
	return season, ok
}

// TermCode maps a season and year onto the registrar code, e.g.
// ("Fall", 2025) -> "202515".
func TermCode(season Season, year int) (string, error) {
	suffix, ok := seasonSuffixes[season]
	if !ok {
		return "", fmt.Errorf("unknown season %q", season)
	}
	return fmt.Sprintf("%04d%s", year, suffix), nil
}

// ParseTermCode is the inverse of TermCode. Malformed codes and unknown
// season suffixes return ok=false rather than an error so lookups against
// arbitrary upstream codes stay cheap.
func ParseTermCode(code string) (Season, int, bool) {
	if len(code) != 6 {
		return "", 0, false
	}
	year, err := strconv.Atoi(code[:4])
	if err != nil {
		return "", 0, false
	}
	season, ok := suffixSeasons[code[4:]]
	if !ok {
		return "", 0, false
	}
	return season, year, true
}

// Term is a single academic term a user plans against.
type Term struct {
	ID        string    `db:"id" json:"id"`
	Season    Season    `db:"season" json:"season"`
	Year      int       `db:"year" json:"year"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Code returns the registrar code for the term.
func (t Term) Code() string {
	code, _ := TermCode(t.Season, t.Year)
	return code
}

// AnchorDate is the first day of the term's recurring-schedule window,
// midnight local time.
func (t Term) AnchorDate() time.Time {
	return time.Date(t.Year, seasonAnchors[t.Season], 1, 0, 0, 0, 0, time.Local)
}

// RecurrenceWindow returns the half-open [start, end) window recurring
// events are projected into: three months from the anchor date.
func (t Term) RecurrenceWindow() (time.Time, time.Time) {
	start := t.AnchorDate()
	return start, start.AddDate(0, 3, 0)
}
