package telegram

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"nice_day_bot/internal/app"
	"nice_day_bot/internal/domain/biorhythm"
)

var errUsage = errors.New("wrong command format")

// parseDateArg expects exactly one YYYY-MM-DD argument.
func parseDateArg(args []string) (biorhythm.Date, error) {
	if len(args) != 1 {
		return biorhythm.Date{}, errUsage
	}
	return biorhythm.ParseDate(strings.TrimSpace(args[0]))
}

// parseMonthArg accepts an optional YYYY-MM argument and defaults to the month of today.
func parseMonthArg(args []string, today biorhythm.Date) (int, int, error) {
	switch len(args) {
	case 0:
		return today.Year, today.Month, nil
	case 1:
		t, err := time.Parse("2006-01", strings.TrimSpace(args[0]))
		if err != nil {
			return 0, 0, fmt.Errorf("%w: expected YYYY-MM", errUsage)
		}
		return t.Year(), int(t.Month()), nil
	default:
		return 0, 0, errUsage
	}
}

// parseYearArg accepts an optional four digit year and defaults to the year of today.
func parseYearArg(args []string, today biorhythm.Date) (int, error) {
	switch len(args) {
	case 0:
		return today.Year, nil
	case 1:
		raw := strings.TrimSpace(args[0])
		year, err := strconv.Atoi(raw)
		if err != nil || len(raw) != 4 || year < 1 {
			return 0, fmt.Errorf("%w: expected YYYY", errUsage)
		}
		return year, nil
	default:
		return 0, errUsage
	}
}

// parseDigestArg reads "on" or "off".
func parseDigestArg(args []string) (bool, error) {
	if len(args) != 1 {
		return false, errUsage
	}
	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("%w: expected on or off", errUsage)
	}
}

type callbackKind int

const (
	callbackUnknown callbackKind = iota
	callbackMonth
	callbackHistory
	callbackDigestOff
)

type callbackAction struct {
	kind  callbackKind
	year  int
	month int
	date  biorhythm.Date
}

// parseCallback decodes inline button data. Telebot prefixes data built from a unique
// button name with "\f" and appends any payload after "|"; both are stripped.
func parseCallback(data string) (callbackAction, error) {
	data = strings.TrimPrefix(data, "\f")
	if i := strings.IndexByte(data, '|'); i >= 0 {
		data = data[:i]
	}

	switch {
	case data == app.CallbackDigestOff:
		return callbackAction{kind: callbackDigestOff}, nil
	case strings.HasPrefix(data, app.CallbackMonthPrefix):
		year, month, err := parseMonthArg([]string{strings.TrimPrefix(data, app.CallbackMonthPrefix)}, biorhythm.Date{})
		if err != nil {
			return callbackAction{}, fmt.Errorf("invalid month callback %q: %w", data, err)
		}
		return callbackAction{kind: callbackMonth, year: year, month: month}, nil
	case strings.HasPrefix(data, app.CallbackHistoryPrefix):
		d, err := biorhythm.ParseDate(strings.TrimPrefix(data, app.CallbackHistoryPrefix))
		if err != nil {
			return callbackAction{}, fmt.Errorf("invalid history callback %q: %w", data, err)
		}
		return callbackAction{kind: callbackHistory, date: d}, nil
	default:
		return callbackAction{kind: callbackUnknown}, fmt.Errorf("unhandled callback data: %q", data)
	}
}
