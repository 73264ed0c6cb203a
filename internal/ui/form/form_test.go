package form

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

var testLimits = UploadLimits{MaxImageBytes: 5 << 20, MaxVideoBytes: 10 << 20}

func validDraft() EventDraft {
	draft := EventDraft{
		Title:       "Summer Jam",
		Description: "Open-air concert",
		Category:    "Music",
		Date:        "2025-07-01",
	}
	draft.Prices.Entries = []PriceEntry{{Currency: "USD", Amount: "25"}}
	return draft
}

func TestEventDraftValid(t *testing.T) {
	draft := validDraft()
	assert.True(t, draft.Validate(testNow, testLimits).Valid())
}

func TestEventDateCannotBeInThePast(t *testing.T) {
	draft := validDraft()
	draft.Date = "2025-06-14" // yesterday

	errs := draft.Validate(testNow, testLimits)
	assert.Equal(t, "Event date cannot be in the past", errs["date"])
}

func TestEventDateTodayIsAllowed(t *testing.T) {
	draft := validDraft()
	draft.Date = "2025-06-15"
	assert.Empty(t, draft.Validate(testNow, testLimits)["date"])
}

func TestTestDateMustPrecedeEventDate(t *testing.T) {
	draft := validDraft()
	draft.TestDate = "2025-07-01" // same day as the event

	errs := draft.Validate(testNow, testLimits)
	assert.Equal(t, "Test date must be before the event date", errs["testDate"])

	draft.TestDate = "2025-06-30"
	assert.True(t, draft.Validate(testNow, testLimits).Valid())
}

func TestRequiredFieldsTrimWhitespace(t *testing.T) {
	draft := validDraft()
	draft.Title = "   "

	errs := draft.Validate(testNow, testLimits)
	assert.Equal(t, "Title is required", errs["title"])
}

func TestPriceListFreeEventBranches(t *testing.T) {
	var prices PriceList
	prices.Entries = []PriceEntry{{Currency: "USD", Amount: "0"}, {Currency: "EUR", Amount: "0"}}

	// All zero without the free flag is rejected.
	errs := prices.Validate()
	assert.NotEmpty(t, errs["prices"])

	// All zero with the free flag is a valid free event.
	prices.Free = true
	assert.True(t, prices.Validate().Valid())

	// A free event cannot also carry a positive price.
	prices.Entries[0].Amount = "10"
	errs = prices.Validate()
	assert.Equal(t, "A free event cannot carry a positive price", errs["prices"])

	// One positive amount without the flag is the normal paid case.
	prices.Free = false
	assert.True(t, prices.Validate().Valid())
}

func TestPriceListCurrencyUniqueness(t *testing.T) {
	var prices PriceList

	require.True(t, prices.Add())
	assert.Equal(t, "USD", prices.Entries[0].Currency, "first entry takes the first supported currency")

	require.True(t, prices.Add())
	assert.Equal(t, "EUR", prices.Entries[1].Currency, "new entries auto-pick the first unused currency")

	available := prices.Available(1)
	assert.NotContains(t, available, "USD", "a currency held by another entry is unselectable")
	assert.Contains(t, available, "EUR", "an entry keeps its own currency selectable")

	// Force a duplicate and confirm validation flags it.
	prices.Entries[1].Currency = "USD"
	prices.Entries[0].Amount = "5"
	errs := prices.Validate()
	assert.Equal(t, "Currency already used by another entry", errs["prices[1]"])
}

func TestPriceListExhaustsSupportedCurrencies(t *testing.T) {
	var prices PriceList
	for range SupportedCurrencies {
		require.True(t, prices.Add())
	}
	assert.False(t, prices.Add(), "no currencies left to assign")
}

func TestFilePreviewKindAndSize(t *testing.T) {
	dir := t.TempDir()

	imagePath := filepath.Join(dir, "banner.png")
	require.NoError(t, os.WriteFile(imagePath, make([]byte, 1024), 0o644))

	preview, err := NewFilePreview(imagePath)
	require.NoError(t, err)
	assert.Equal(t, KindImage, preview.Kind)
	assert.Empty(t, preview.Validate(KindImage, testLimits))
	assert.Equal(t, "This field accepts video files only", preview.Validate(KindVideo, testLimits))

	// Oversized image rejected against the image limit.
	preview.Size = 6 << 20
	assert.Equal(t, "File exceeds the 5MB limit", preview.Validate(KindImage, testLimits))

	_, err = NewFilePreview(filepath.Join(dir, "notes.txt"))
	assert.Error(t, err, "missing file")

	textPath := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(textPath, []byte("x"), 0o644))
	_, err = NewFilePreview(textPath)
	assert.Error(t, err, "unsupported extension")
}

func TestWizardGatesEachStep(t *testing.T) {
	wizard := NewWizard(testLimits, func() time.Time { return testNow })
	require.Equal(t, StepDetails, wizard.Step())

	errs := wizard.Next()
	assert.False(t, errs.Valid(), "empty details block the first step")
	assert.Equal(t, StepDetails, wizard.Step())
	assert.NotContains(t, errs, "date", "schedule errors stay off the details screen")

	wizard.Draft.Title = "Summer Jam"
	wizard.Draft.Description = "Open-air concert"
	wizard.Draft.Category = "Music"
	require.True(t, wizard.Next().Valid())
	require.Equal(t, StepSchedule, wizard.Step())

	wizard.Draft.Date = "2020-01-01"
	errs = wizard.Next()
	assert.Equal(t, "Event date cannot be in the past", errs["date"])

	wizard.Draft.Date = "2025-07-01"
	require.True(t, wizard.Next().Valid())
	require.Equal(t, StepMedia, wizard.Step())

	require.True(t, wizard.Next().Valid(), "media slots are optional")
	require.Equal(t, StepTickets, wizard.Step())

	wizard.Draft.Prices.Entries[0].Amount = "15"
	require.True(t, wizard.Next().Valid())
	require.Equal(t, StepReview, wizard.Step())

	assert.True(t, wizard.Submit().Valid())

	wizard.Back()
	assert.Equal(t, StepTickets, wizard.Step())
}

func TestLocationDraftCoordinateBounds(t *testing.T) {
	draft := LocationDraft{
		Name:      "Eko Arena",
		Address:   "12 Marina Road",
		City:      "Lagos",
		Country:   "Nigeria",
		Latitude:  "6.45",
		Longitude: "3.39",
	}
	assert.True(t, draft.Validate(nil).Valid())

	draft.Latitude = "91"
	errs := draft.Validate(nil)
	assert.Equal(t, "Latitude must be between -90 and 90", errs["latitude"])

	draft.Latitude = "6.45"
	draft.Longitude = "-181"
	errs = draft.Validate(nil)
	assert.Equal(t, "Longitude must be between -180 and 180", errs["longitude"])

	draft.Longitude = "abc"
	errs = draft.Validate(nil)
	assert.Equal(t, "Enter a numeric longitude", errs["longitude"])

	draft.Name = ""
	draft.Longitude = "3.39"
	errs = draft.Validate(nil)
	assert.Equal(t, "Name is required", errs["name"])
}

func TestEventPayloadConversion(t *testing.T) {
	draft := validDraft()
	draft.TestDate = "2025-06-20"

	payload := draft.Payload()
	assert.Equal(t, "Summer Jam", payload.Title)
	assert.Equal(t, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), payload.Date)
	require.NotNil(t, payload.TestDate)
	require.Len(t, payload.Prices, 1)
	assert.Equal(t, 25.0, payload.Prices[0].Amount)
}
