// Package cli implements the offline niceday command line tool. It runs the biorhythm
// engine and the renderers used by the bot without Telegram or a database.
package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"nice_day_bot/internal/domain/biorhythm"
	"nice_day_bot/internal/domain/organclock"

	"github.com/alecthomas/kong"
)

type Context struct {
	Out      io.Writer
	Organs   *organclock.Schedule
	Location *time.Location
	Now      func() time.Time
}

func (c *Context) today() biorhythm.Date {
	return biorhythm.FromTime(c.Now().In(c.Location))
}

// parseDay accepts YYYY-MM-DD or "today".
func (c *Context) parseDay(s string) (biorhythm.Date, error) {
	if s == "" || s == "today" {
		return c.today(), nil
	}
	return biorhythm.ParseDate(s)
}

// plain strips the Markdown emphasis and code fences used for Telegram.
func plain(s string) string {
	s = strings.ReplaceAll(s, "```\n", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.ReplaceAll(s, "*", "")
}

func (c *Context) print(s string) error {
	_, err := fmt.Fprintln(c.Out, strings.TrimRight(plain(s), "\n"))
	return err
}

// Root is the niceday command tree.
type Root struct {
	Version  kong.VersionFlag
	Timezone string `help:"IANA time zone used for 'today'." default:"UTC" env:"TIMEZONE"`

	Day   DayCmd   `cmd:"" help:"Show the biorhythm of one day."`
	Month MonthCmd `cmd:"" help:"Show the best and worst day of a month."`
	Year  YearCmd  `cmd:"" help:"Show the best and worst day of every month of a year."`
	Range RangeCmd `cmd:"" help:"Show a day-by-day table around a date."`
	Organ OrganCmd `cmd:"" help:"Show the organ clock window for an hour."`
}
