// Package calendar lists the recurring Portuguese tax obligations of a
// self-employed worker: monthly social security and IRS withholding, and
// quarterly VAT declaration and payment.
package calendar

import (
	"sort"
	"time"
)

// EventType groups obligations by tax
type EventType string

const (
	EventSS  EventType = "ss"
	EventVAT EventType = "vat"
	EventIRS EventType = "irs"
)

// Status of an event relative to a reference day
type Status string

const (
	StatusDone     Status = "done"
	StatusUrgent   Status = "urgent"
	StatusUpcoming Status = "upcoming"
)

// urgentWindow is how many days before the deadline an event becomes urgent
const urgentWindow = 3

// Event is one dated obligation
type Event struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        EventType `json:"type"`
	Date        time.Time `json:"date"`
	Status      Status    `json:"status,omitempty"`
}

type obligation struct {
	title       string
	description string
	kind        EventType
	day         int
	quarterly   bool
}

var obligations = []obligation{
	{"Social Security payment", "Monthly contribution to Segurança Social", EventSS, 20, false},
	{"Periodic VAT declaration", "Quarterly VAT return for the previous quarter", EventVAT, 20, true},
	{"VAT payment", "Payment of VAT assessed in the quarterly return", EventVAT, 25, true},
	{"IRS withholding", "Delivery of IRS withheld at source", EventIRS, 20, false},
}

// IsVATMonth reports whether quarterly VAT obligations fall in month
func IsVATMonth(m time.Month) bool {
	switch m {
	case time.February, time.May, time.August, time.November:
		return true
	}
	return false
}

// Month returns the obligations due in the given month, sorted by date
func Month(year int, month time.Month, loc *time.Location) []Event {
	if loc == nil {
		loc = time.UTC
	}
	var events []Event
	for _, o := range obligations {
		if o.quarterly && !IsVATMonth(month) {
			continue
		}
		events = append(events, Event{
			Title:       o.title,
			Description: o.description,
			Type:        o.kind,
			Date:        time.Date(year, month, o.day, 0, 0, 0, 0, loc),
		})
	}
	sortEvents(events)
	return events
}

// Year returns every obligation in the year, sorted by date
func Year(year int, loc *time.Location) []Event {
	var events []Event
	for m := time.January; m <= time.December; m++ {
		events = append(events, Month(year, m, loc)...)
	}
	return events
}

// Upcoming returns the current month's obligations with a status relative to now.
// An event is done once its day has passed and urgent from three days before
// through the day itself.
func Upcoming(now time.Time) []Event {
	events := Month(now.Year(), now.Month(), now.Location())
	for i := range events {
		events[i].Status = StatusFor(now.Day(), events[i].Date.Day())
	}
	return events
}

// StatusFor classifies a deadline day against today's day of month
func StatusFor(today, deadline int) Status {
	switch {
	case today > deadline:
		return StatusDone
	case today >= deadline-urgentWindow:
		return StatusUrgent
	default:
		return StatusUpcoming
	}
}

func sortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
}
