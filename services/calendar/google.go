package calendar

import (
	"context"
	"fmt"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"bookable/models"
)

// listPageSize caps a single events query; a two-week booking window stays
// well under it.
const listPageSize = 100

// GoogleProvider talks to the Google Calendar API for one calendar.
type GoogleProvider struct {
	svc        *gcal.Service
	calendarID string
	location   *time.Location
}

// NewGoogleProvider builds a client authenticated with a service-account
// credentials file.
func NewGoogleProvider(ctx context.Context, credentialsFile, calendarID string, loc *time.Location) (*GoogleProvider, error) {
	svc, err := gcal.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gcal.CalendarScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar client: %w", err)
	}
	return &GoogleProvider{
		svc:        svc,
		calendarID: calendarID,
		location:   loc,
	}, nil
}

// ListEvents fetches single (recurrence-expanded) events in [from, to) and
// maps them to busy intervals.
func (p *GoogleProvider) ListEvents(ctx context.Context, from, to time.Time) ([]models.Interval, error) {
	res, err := p.svc.Events.List(p.calendarID).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(listPageSize).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}

	var busy []models.Interval
	for _, ev := range res.Items {
		if ev.Status == "cancelled" {
			continue
		}
		iv, ok := p.eventInterval(ev)
		if !ok {
			continue
		}
		busy = append(busy, iv)
	}
	return busy, nil
}

// eventInterval converts an event to an absolute-time interval. All-day
// events carry a date without a time and expand to local midnight spans.
func (p *GoogleProvider) eventInterval(ev *gcal.Event) (models.Interval, bool) {
	if ev.Start == nil || ev.End == nil {
		return models.Interval{}, false
	}
	start, ok := p.eventTime(ev.Start)
	if !ok {
		return models.Interval{}, false
	}
	end, ok := p.eventTime(ev.End)
	if !ok || !start.Before(end) {
		return models.Interval{}, false
	}
	return models.Interval{Start: start, End: end}, true
}

func (p *GoogleProvider) eventTime(edt *gcal.EventDateTime) (time.Time, bool) {
	if edt.DateTime != "" {
		t, err := time.Parse(time.RFC3339, edt.DateTime)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	if edt.Date != "" {
		t, err := time.ParseInLocation("2006-01-02", edt.Date, p.location)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}

// CreateEvent inserts the event and returns its id and link.
func (p *GoogleProvider) CreateEvent(ctx context.Context, input EventInput) (*models.BookedEvent, error) {
	ev := &gcal.Event{
		Summary:     input.Title,
		Description: input.Description,
		Start:       &gcal.EventDateTime{DateTime: input.Start.Format(time.RFC3339)},
		End:         &gcal.EventDateTime{DateTime: input.End.Format(time.RFC3339)},
	}
	if input.AttendeeEmail != "" {
		ev.Attendees = []*gcal.EventAttendee{{Email: input.AttendeeEmail}}
	}

	created, err := p.svc.Events.Insert(p.calendarID, ev).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar event: %w", err)
	}
	return &models.BookedEvent{
		ID:    created.Id,
		Link:  created.HtmlLink,
		Start: input.Start,
		End:   input.End,
	}, nil
}
