package holiday

import "sort"

// Fixed-date national holidays, keyed by MM-DD. Lunar holidays move every
// year and are entered by the administrators; only the fixed dates can be
// cross-checked automatically.
var fixedNationalHolidays = map[string]string{
	"01-01": "신정",
	"03-01": "삼일절",
	"05-05": "어린이날",
	"06-06": "현충일",
	"08-15": "광복절",
	"10-03": "개천절",
	"10-09": "한글날",
	"12-25": "기독탄신일",
}

// SubstituteSuffix is appended to the original holiday name when a weekend
// holiday is shifted to the next working day.
const SubstituteSuffix = " (대체공휴일)"

const substituteMarker = "대체공휴일"

func fixedHolidayDates() []string {
	dates := make([]string, 0, len(fixedNationalHolidays))
	for md := range fixedNationalHolidays {
		dates = append(dates, md)
	}
	sort.Strings(dates)
	return dates
}
