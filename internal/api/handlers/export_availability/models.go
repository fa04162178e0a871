package export_availability

import (
	"fmt"
	"strconv"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	getAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_availability"
)

const (
	productID    = "-//SMC//Availability Service//EN"
	eventSummary = "Available"
	uidDomain    = "availability.smc"
)

// uidNamespace пространство имен для детерминированных UID событий
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://"+uidDomain))

// BuildCalendar строит VCALENDAR с VEVENT на каждый свободный диапазон
// Время событий записывается в UTC, повторная выгрузка дает те же UID
func BuildCalendar(resp *getAvailability.Response, stamp time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)
	cal.Props.SetText("X-WR-CALNAME", fmt.Sprintf("%s availability", resp.Username))
	cal.Props.SetText("X-WR-TIMEZONE", resp.TimeZone)

	for _, day := range resp.Days {
		for _, r := range day.Ranges {
			event := ical.NewEvent()
			event.Props.SetText(ical.PropUID, eventUID(resp.Username, resp.EventTypeID, r.Start))
			event.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
			event.Props.SetDateTime(ical.PropDateTimeStart, r.Start.UTC())
			event.Props.SetDateTime(ical.PropDateTimeEnd, r.End.UTC())
			event.Props.SetText(ical.PropSummary, eventSummary)
			event.Props.SetText(ical.PropDescription, day.Summary())
			event.Props.SetText(ical.PropTransparency, "TRANSPARENT")

			cal.Children = append(cal.Children, event.Component)
		}
	}

	return cal
}

func eventUID(username string, eventTypeID int64, start time.Time) string {
	name := username + ":" + strconv.FormatInt(eventTypeID, 10) + ":" + strconv.FormatInt(start.Unix(), 10)
	return uuid.NewSHA1(uidNamespace, []byte(name)).String() + "@" + uidDomain
}
