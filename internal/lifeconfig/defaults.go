package lifeconfig

import "github.com/tartampluch/go-lifeweeks/internal/config"

// Default returns the sample configuration shown on first launch and after a reset.
func Default() LifeConfig {
	return LifeConfig{
		Birthdate:  "1986-06-15",
		TotalYears: config.DefaultTotalYears,
		Periods: []LifePeriod{
			{Label: "Childhood", Start: "1986-06-15", End: "1993-08-31"},
			{Label: "School", Start: "1993-09-01", End: "2004-06-30"},
			{Label: "University", Start: "2004-09-01", End: "2009-06-30"},
			{Label: "First Job", Start: "2009-07-01", End: "2013-03-31"},
			{Label: "Startup", Start: "2013-04-01", End: "2016-12-31"},
			{Label: "Big Tech", Start: "2017-01-01", End: "2021-12-31"},
			{Label: "Freelance", Start: "2022-01-01", End: "2026-06-14"},
		},
		Dates: []DateMarker{
			{Date: "2009-07-01", Title: "Career"},
			{Date: "2016-12-15", Title: "PhD"},
			{Date: "2019-09-15", Title: "🇺🇸"},
			{Date: "2053-06-15", Title: "Retirement"},
		},
		ShowToday: Bool(true),
	}
}
