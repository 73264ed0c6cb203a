package form

import (
	"strings"
	"time"

	"github.com/evlive/admin-console/internal/api"
)

// Date input layout used across forms.
const dateLayout = "2006-01-02"

// EventDraft is the multi-step event form's working state. Fields are
// kept as entered text until submission; Validate parses and checks
// them synchronously, so an invalid draft never produces a request.
type EventDraft struct {
	Title       string
	Description string
	Category    string
	Date        string
	TestDate    string
	LocationID  string

	Prices PriceList

	Banner    *FilePreview
	Watermark *FilePreview
	Trailer   *FilePreview
}

// Errors maps field name to the message rendered inline beside it.
type Errors map[string]string

// Valid reports whether the error set is empty.
func (e Errors) Valid() bool { return len(e) == 0 }

// Validate checks the whole draft against the submission rules. The
// caller supplies now so tests control the clock, and the upload
// limits from configuration.
func (d *EventDraft) Validate(now time.Time, limits UploadLimits) Errors {
	errs := Errors{}

	if strings.TrimSpace(d.Title) == "" {
		errs["title"] = "Title is required"
	} else if len(d.Title) > 120 {
		errs["title"] = "Title must be at most 120 characters"
	}
	if strings.TrimSpace(d.Description) == "" {
		errs["description"] = "Description is required"
	} else if len(d.Description) > 2000 {
		errs["description"] = "Description must be at most 2000 characters"
	}
	if strings.TrimSpace(d.Category) == "" {
		errs["category"] = "Category is required"
	}

	eventDate, err := parseDate(d.Date)
	if err != nil {
		errs["date"] = "Enter the event date as YYYY-MM-DD"
	} else if eventDate.Before(startOfDay(now)) {
		errs["date"] = "Event date cannot be in the past"
	}

	if strings.TrimSpace(d.TestDate) != "" {
		testDate, err := parseDate(d.TestDate)
		switch {
		case err != nil:
			errs["testDate"] = "Enter the test date as YYYY-MM-DD"
		case testDate.Before(startOfDay(now)):
			errs["testDate"] = "Test date cannot be in the past"
		case errs["date"] == "" && !testDate.Before(eventDate):
			errs["testDate"] = "Test date must be before the event date"
		}
	}

	for field, msg := range d.Prices.Validate() {
		errs[field] = msg
	}

	if d.Banner != nil {
		if msg := d.Banner.Validate(KindImage, limits); msg != "" {
			errs["banner"] = msg
		}
	}
	if d.Watermark != nil {
		if msg := d.Watermark.Validate(KindImage, limits); msg != "" {
			errs["watermark"] = msg
		}
	}
	if d.Trailer != nil {
		if msg := d.Trailer.Validate(KindVideo, limits); msg != "" {
			errs["trailer"] = msg
		}
	}

	return errs
}

// Payload converts a validated draft to the client's request shape.
// Call only after Validate returned no errors.
func (d *EventDraft) Payload() api.EventPayload {
	date, _ := parseDate(d.Date)
	payload := api.EventPayload{
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		Category:    d.Category,
		Date:        date,
		LocationID:  d.LocationID,
		Prices:      d.Prices.Models(),
	}
	if strings.TrimSpace(d.TestDate) != "" {
		if testDate, err := parseDate(d.TestDate); err == nil {
			payload.TestDate = &testDate
		}
	}
	return payload
}

// Uploads collects the draft's selected files as multipart parts,
// skipping unset slots.
func (d *EventDraft) Uploads() ([]api.Upload, error) {
	var uploads []api.Upload
	for _, slot := range []struct {
		field   string
		preview *FilePreview
	}{
		{"banner", d.Banner},
		{"watermark", d.Watermark},
		{"trailer", d.Trailer},
	} {
		if slot.preview == nil {
			continue
		}
		upload, err := slot.preview.Upload(slot.field)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, upload)
	}
	return uploads, nil
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(value))
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
