package app

import (
	"fmt"
	"strings"
	"time"

	"nice_day_bot/internal/domain/biorhythm"
	"nice_day_bot/internal/domain/organclock"
	"nice_day_bot/internal/domain/subscriber"
)

// Renderers produce Telegram legacy Markdown. User supplied text is never interpolated.

func monthName(month int) string {
	return time.Month(month).String()
}

func componentsLine(s biorhythm.Snapshot) string {
	return fmt.Sprintf("Physical %d, Emotional %d, Intellectual %d", s.Physical, s.Emotional, s.Intellectual)
}

// FormatDailyReport renders a full daily reading.
func FormatDailyReport(r DailyReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Biorhythm for %s*\n", r.Date)
	fmt.Fprintf(&b, "Day %d since birth\n\n", r.DaysSinceBirth)

	for _, c := range r.Cycles {
		fmt.Fprintf(&b, "*%s*: %d (day %d of %d) %s\n", c.Cycle.Title(), c.Value, c.Day, c.Period, c.Status.Label())
		fmt.Fprintf(&b, "%s\n", c.Tip)
	}

	fmt.Fprintf(&b, "\n*Combined*: %.1f %s\n", r.Combined, r.CombinedStatus.Label())
	fmt.Fprintf(&b, "%s\n\n", r.CombinedTip)

	b.WriteString("*Advice*\n")
	fmt.Fprintf(&b, "Exercise: %s\n", r.Advice.Exercise)
	fmt.Fprintf(&b, "Diet: %s\n", r.Advice.Diet)
	fmt.Fprintf(&b, "Work: %s\n", r.Advice.Work)
	fmt.Fprintf(&b, "Rest: %s\n", r.Advice.Rest)
	fmt.Fprintf(&b, "Social: %s", r.Advice.Social)
	return b.String()
}

// FormatMonthlyExtrema renders the best and worst day of a month.
func FormatMonthlyExtrema(m biorhythm.MonthlyExtrema) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Outlook for %s %d*\n\n", monthName(m.Month), m.Year)
	fmt.Fprintf(&b, "Best day: %s (combined %d, %s)\n", m.High.Date, m.High.Combined, biorhythm.ClassifyStatus(m.High.Combined).Label())
	fmt.Fprintf(&b, "%s\n\n", componentsLine(m.High.Snapshot))
	fmt.Fprintf(&b, "Worst day: %s (combined %d, %s)\n", m.Low.Date, m.Low.Combined, biorhythm.ClassifyStatus(m.Low.Combined).Label())
	fmt.Fprintf(&b, "%s", componentsLine(m.Low.Snapshot))
	return b.String()
}

// FormatYearOutlook renders one line per month.
func FormatYearOutlook(year int, months []biorhythm.MonthlyExtrema) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Outlook for %d*\n```\n", year)
	fmt.Fprintf(&b, "%-9s %-14s %-14s\n", "Month", "Best", "Worst")
	for _, m := range months {
		fmt.Fprintf(&b, "%-9s %02d (%4d)      %02d (%4d)\n",
			monthName(m.Month)[:3], m.High.Date.Day, m.High.Combined, m.Low.Date.Day, m.Low.Combined)
	}
	b.WriteString("```")
	return b.String()
}

// FormatSeries renders a day-by-day table. The row for mark is flagged with an arrow.
func FormatSeries(s biorhythm.Series, mark biorhythm.Date) string {
	var b strings.Builder
	if s.Len() == 0 {
		return "No data."
	}
	fmt.Fprintf(&b, "*Biorhythm %s to %s*\n```\n", s.Dates[0], s.Dates[s.Len()-1])
	fmt.Fprintf(&b, "%-10s %4s %4s %4s %6s\n", "Date", "P", "E", "I", "Comb")
	for i := 0; i < s.Len(); i++ {
		flag := ""
		if s.Dates[i] == mark {
			flag = " <"
		}
		fmt.Fprintf(&b, "%-10s %4d %4d %4d %6.1f%s\n",
			s.Dates[i], s.Physical[i], s.Emotional[i], s.Intellectual[i], s.Combined[i], flag)
	}
	b.WriteString("```")
	return b.String()
}

// FormatOrganWindow renders the organ clock slot active at hour.
func FormatOrganWindow(w organclock.Window, hour int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%02d:00: %s time (%s)*\n", hour, w.Organ, w.Range())
	fmt.Fprintf(&b, "%s\n\n", w.Description)
	fmt.Fprintf(&b, "Good for: %s\n", w.Activities)
	fmt.Fprintf(&b, "Tips: %s", w.Tips)
	return b.String()
}

// FormatHistory lists recent lookups, most recent first.
func FormatHistory(h biorhythm.History) string {
	if len(h) == 0 {
		return "No lookups yet. Try /today or /date YYYY-MM-DD."
	}
	var b strings.Builder
	b.WriteString("*Recent lookups*\n")
	for i, d := range h {
		fmt.Fprintf(&b, "%d. %s\n", i+1, d)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatSubscribers renders the admin overview. Names are omitted, they may contain
// Markdown control characters.
func FormatSubscribers(subs []*subscriber.Subscriber) string {
	if len(subs) == 0 {
		return "No subscribers yet."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "*Subscribers: %d*\n", len(subs))
	for _, s := range subs {
		birth := "not set"
		if s.HasBirthDate() {
			birth = s.BirthDate.String()
		}
		digest := "off"
		if s.DigestEnabled {
			digest = "on"
		}
		fmt.Fprintf(&b, "%d: birth %s, digest %s\n", s.TelegramID, birth, digest)
	}
	return strings.TrimRight(b.String(), "\n")
}
