package cli

import (
	"fmt"

	"nice_day_bot/internal/app"
	"nice_day_bot/internal/domain/biorhythm"
)

func parseBirth(s string) (biorhythm.Date, error) {
	d, err := biorhythm.ParseDate(s)
	if err != nil {
		return biorhythm.Date{}, fmt.Errorf("invalid --birth: %w", err)
	}
	return d, nil
}

type DayCmd struct {
	Birth string `required:"" short:"b" help:"Birth date (YYYY-MM-DD)."`
	Date string `arg:"" optional:"" help:"Date to show (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *DayCmd) Run(ctx *Context) error {
	birth, err := parseBirth(c.Birth)
	if err != nil {
		return err
	}
	target, err := ctx.parseDay(c.Date)
	if err != nil {
		return err
	}
	report, err := app.BuildDailyReport(birth, target)
	if err != nil {
		return err
	}
	return ctx.print(app.FormatDailyReport(report))
}

type MonthCmd struct {
	Birth string `required:"" short:"b" help:"Birth date (YYYY-MM-DD)."`
	Year  int `arg:"" optional:"" help:"Year (defaults to the current one)."`
	Month int `arg:"" optional:"" help:"Month 1-12 (defaults to the current one)."`
}

func (c *MonthCmd) Run(ctx *Context) error {
	birth, err := parseBirth(c.Birth)
	if err != nil {
		return err
	}
	year, month := c.Year, c.Month
	if year == 0 {
		year = ctx.today().Year
	}
	if month == 0 {
		month = ctx.today().Month
	}
	extrema, err := biorhythm.ScanMonth(birth, year, month)
	if err != nil {
		return err
	}
	return ctx.print(app.FormatMonthlyExtrema(extrema))
}

type YearCmd struct {
	Birth string `required:"" short:"b" help:"Birth date (YYYY-MM-DD)."`
	Year int `arg:"" optional:"" help:"Year (defaults to the current one)."`
}

func (c *YearCmd) Run(ctx *Context) error {
	birth, err := parseBirth(c.Birth)
	if err != nil {
		return err
	}
	year := c.Year
	if year == 0 {
		year = ctx.today().Year
	}
	months, err := biorhythm.ScanYear(birth, year)
	if err != nil {
		return err
	}
	return ctx.print(app.FormatYearOutlook(year, months))
}

type RangeCmd struct {
	Birth string `required:"" short:"b" help:"Birth date (YYYY-MM-DD)."`
	Center string `arg:"" optional:"" help:"Center date (YYYY-MM-DD or 'today')." default:"today"`
	Before int    `help:"Days before the center." default:"10"`
	After  int    `help:"Days after the center." default:"20"`
}

func (c *RangeCmd) Run(ctx *Context) error {
	birth, err := parseBirth(c.Birth)
	if err != nil {
		return err
	}
	center, err := ctx.parseDay(c.Center)
	if err != nil {
		return err
	}
	series, err := biorhythm.ComputeRange(birth, center, c.Before, c.After)
	if err != nil {
		return err
	}
	return ctx.print(app.FormatSeries(series, center))
}

type OrganCmd struct {
	Hour int `arg:"" optional:"" help:"Hour 0-23 (defaults to now)." default:"-1"`
}

func (c *OrganCmd) Run(ctx *Context) error {
	hour := c.Hour
	if hour < 0 {
		hour = ctx.Now().In(ctx.Location).Hour()
	}
	if hour > 23 {
		return fmt.Errorf("hour must be between 0 and 23, got %d", hour)
	}
	w, ok := ctx.Organs.At(hour)
	if !ok {
		return fmt.Errorf("no organ window covers hour %d", hour)
	}
	return ctx.print(app.FormatOrganWindow(w, hour))
}
