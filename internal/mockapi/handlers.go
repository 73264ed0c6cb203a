package mockapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/evlive/admin-console/internal/models"
	"github.com/evlive/admin-console/pkg/errors"
	"github.com/evlive/admin-console/pkg/response"
)

const dateParamLayout = "2006-01-02"

// parseQuery collects the list parameters every collection endpoint
// shares. Unknown filter keys are carried as-is; each store method
// reads only the keys its screen defines.
func parseQuery(c *gin.Context) query {
	q := query{
		page:      1,
		limit:     10,
		sortBy:    c.Query("sortBy"),
		sortOrder: c.Query("sortOrder"),
		search:    c.Query("search"),
		filters:   map[string]string{},
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && page > 0 {
		q.page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "10")); err == nil && limit > 0 {
		q.limit = limit
	}
	for key, values := range c.Request.URL.Query() {
		switch key {
		case "page", "limit", "sortBy", "sortOrder", "search", "startDate", "endDate":
			continue
		}
		if len(values) > 0 {
			q.filters[key] = values[0]
		}
	}
	if start, err := time.Parse(dateParamLayout, c.Query("startDate")); err == nil {
		q.start = &start
	}
	if end, err := time.Parse(dateParamLayout, c.Query("endDate")); err == nil {
		q.end = &end
	}
	return q
}

// EventHandler exposes the event moderation endpoints.
type EventHandler struct {
	store *Store
}

// NewEventHandler constructs an event handler.
func NewEventHandler(store *Store) *EventHandler {
	return &EventHandler{store: store}
}

// List returns a page of events.
func (h *EventHandler) List(c *gin.Context) {
	q := parseQuery(c)
	docs, total := h.store.ListEvents(q)
	response.List(c, "events fetched", docs, total, q.page, q.limit)
}

// Get returns one event.
func (h *EventHandler) Get(c *gin.Context) {
	event, err := h.store.GetEvent(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Record(c, http.StatusOK, "event fetched", "event", event)
}

type reasonBody struct {
	Reason string `json:"reason"`
}

// Approve moves a pending or rejected event to approved.
func (h *EventHandler) Approve(c *gin.Context) {
	_, err := h.store.UpdateEvent(c.Param("id"), func(e *models.Event) error {
		if e.AdminStatus == models.AdminApproved {
			return errors.Clone(errors.ErrConflict, "event is already approved")
		}
		e.AdminStatus = models.AdminApproved
		e.RejectReason = ""
		return nil
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	h.store.RecordActivity(actor(c), "approve", "event", c.Param("id"), "")
	response.Message(c, http.StatusOK, "event approved")
}

// Reject declines a pending event. The reason is mandatory.
func (h *EventHandler) Reject(c *gin.Context) {
	var body reasonBody
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Reason) == "" {
		response.Error(c, errors.Clone(errors.ErrValidation, "a rejection reason is required"))
		return
	}
	_, err := h.store.UpdateEvent(c.Param("id"), func(e *models.Event) error {
		if e.AdminStatus != models.AdminPending {
			return errors.Clone(errors.ErrConflict, "only pending events can be rejected")
		}
		e.AdminStatus = models.AdminRejected
		e.RejectReason = body.Reason
		return nil
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	h.store.RecordActivity(actor(c), "reject", "event", c.Param("id"), body.Reason)
	response.Message(c, http.StatusOK, "event rejected")
}

// Unpublish pulls an approved event back to pending review.
func (h *EventHandler) Unpublish(c *gin.Context) {
	var body reasonBody
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Reason) == "" {
		response.Error(c, errors.Clone(errors.ErrValidation, "an unpublish reason is required"))
		return
	}
	_, err := h.store.UpdateEvent(c.Param("id"), func(e *models.Event) error {
		if e.AdminStatus != models.AdminApproved {
			return errors.Clone(errors.ErrConflict, "only approved events can be unpublished")
		}
		e.AdminStatus = models.AdminPending
		e.StreamLive = false
		return nil
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	h.store.RecordActivity(actor(c), "unpublish", "event", c.Param("id"), body.Reason)
	response.Message(c, http.StatusOK, "event unpublished")
}

// StartStream opens the live session for an approved future event.
func (h *EventHandler) StartStream(c *gin.Context) {
	_, err := h.store.UpdateEvent(c.Param("id"), func(e *models.Event) error {
		if e.AdminStatus != models.AdminApproved {
			return errors.Clone(errors.ErrConflict, "only approved events can stream")
		}
		if e.StreamLive {
			return errors.Clone(errors.ErrConflict, "stream is already live")
		}
		e.StreamLive = true
		return nil
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "stream started")
}

// EndStream closes the live session.
func (h *EventHandler) EndStream(c *gin.Context) {
	_, err := h.store.UpdateEvent(c.Param("id"), func(e *models.Event) error {
		if !e.StreamLive {
			return errors.Clone(errors.ErrConflict, "stream is not live")
		}
		e.StreamLive = false
		return nil
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "stream ended")
}

// Create accepts the multipart event submission. File parts are read
// for size only; the fixture server stores no media.
func (h *EventHandler) Create(c *gin.Context) {
	event, err := h.eventFromForm(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	stored := h.store.InsertEvent(event)
	response.Record(c, http.StatusCreated, "event created", "event", stored)
}

// Update replaces the editable fields of an existing event.
func (h *EventHandler) Update(c *gin.Context) {
	incoming, err := h.eventFromForm(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	stored, err := h.store.UpdateEvent(c.Param("id"), func(e *models.Event) error {
		e.Title = incoming.Title
		e.Description = incoming.Description
		e.Category = incoming.Category
		e.Date = incoming.Date
		e.TestDate = incoming.TestDate
		e.LocationID = incoming.LocationID
		e.Prices = incoming.Prices
		return nil
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Record(c, http.StatusOK, "event updated", "event", stored)
}

func (h *EventHandler) eventFromForm(c *gin.Context) (models.Event, error) {
	var event models.Event
	event.Title = strings.TrimSpace(c.PostForm("title"))
	event.Description = strings.TrimSpace(c.PostForm("description"))
	event.Category = c.PostForm("category")
	event.LocationID = c.PostForm("locationId")

	if event.Title == "" {
		return event, errors.Clone(errors.ErrValidation, "title is required")
	}
	date, err := time.Parse(time.RFC3339, c.PostForm("date"))
	if err != nil {
		return event, errors.Clone(errors.ErrValidation, "date must be RFC3339")
	}
	event.Date = date
	if raw := c.PostForm("testDate"); raw != "" {
		testDate, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return event, errors.Clone(errors.ErrValidation, "testDate must be RFC3339")
		}
		event.TestDate = &testDate
	}
	if raw := c.PostForm("prices"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &event.Prices); err != nil {
			return event, errors.Clone(errors.ErrValidation, "prices must be a JSON array")
		}
	}

	for _, field := range []string{"banner", "watermark", "trailer"} {
		file, err := c.FormFile(field)
		if err != nil {
			continue
		}
		// Record a pretend URL so the client sees media round-trip.
		url := "https://cdn.evlive.dev/media/" + file.Filename
		switch field {
		case "banner":
			event.BannerURL = url
		case "watermark":
			event.WatermarkURL = url
		case "trailer":
			event.TrailerURL = url
		}
	}
	return event, nil
}

// AccountHandler serves one of the three people-shaped resources.
type AccountHandler struct {
	store *Store
	role  models.AccountRole
}

// NewAccountHandler constructs a handler bound to a role.
func NewAccountHandler(store *Store, role models.AccountRole) *AccountHandler {
	return &AccountHandler{store: store, role: role}
}

// List returns a page of accounts.
func (h *AccountHandler) List(c *gin.Context) {
	q := parseQuery(c)
	docs, total := h.store.ListAccounts(h.role, q)
	response.List(c, "accounts fetched", docs, total, q.page, q.limit)
}

// Get returns one account.
func (h *AccountHandler) Get(c *gin.Context) {
	account, err := h.store.GetAccount(h.role, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Record(c, http.StatusOK, "account fetched", "account", account)
}

// Lock freezes sign-in for the account.
func (h *AccountHandler) Lock(c *gin.Context) {
	h.toggle(c, "account locked", func(a *models.Account) error {
		if a.Locked {
			return errors.Clone(errors.ErrConflict, "account is already locked")
		}
		a.Locked = true
		return nil
	})
}

// Unlock lifts the freeze.
func (h *AccountHandler) Unlock(c *gin.Context) {
	h.toggle(c, "account unlocked", func(a *models.Account) error {
		if !a.Locked {
			return errors.Clone(errors.ErrConflict, "account is not locked")
		}
		a.Locked = false
		return nil
	})
}

// Activate re-enables an inactive account.
func (h *AccountHandler) Activate(c *gin.Context) {
	h.toggle(c, "account activated", func(a *models.Account) error {
		a.Status = models.AccountActive
		return nil
	})
}

// Deactivate disables the account, with a mandatory reason.
func (h *AccountHandler) Deactivate(c *gin.Context) {
	var body reasonBody
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Reason) == "" {
		response.Error(c, errors.Clone(errors.ErrValidation, "a deactivation reason is required"))
		return
	}
	h.toggle(c, "account deactivated", func(a *models.Account) error {
		a.Status = models.AccountInactive
		return nil
	})
}

func (h *AccountHandler) toggle(c *gin.Context, message string, fn func(*models.Account) error) {
	if err := h.store.UpdateAccount(h.role, c.Param("id"), fn); err != nil {
		response.Error(c, err)
		return
	}
	h.store.RecordActivity(actor(c), message, string(h.role), c.Param("id"), "")
	response.Message(c, http.StatusOK, message)
}

// TransactionHandler exposes purchase history and refunds.
type TransactionHandler struct {
	store *Store
}

// NewTransactionHandler constructs a transaction handler.
func NewTransactionHandler(store *Store) *TransactionHandler {
	return &TransactionHandler{store: store}
}

// List returns a page of transactions.
func (h *TransactionHandler) List(c *gin.Context) {
	q := parseQuery(c)
	docs, total := h.store.ListTransactions(q)
	response.List(c, "transactions fetched", docs, total, q.page, q.limit)
}

// Get returns one transaction.
func (h *TransactionHandler) Get(c *gin.Context) {
	txn, err := h.store.GetTransaction(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Record(c, http.StatusOK, "transaction fetched", "transaction", txn)
}

// Refund reverses a completed transaction, with a mandatory reason.
func (h *TransactionHandler) Refund(c *gin.Context) {
	var body reasonBody
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Reason) == "" {
		response.Error(c, errors.Clone(errors.ErrValidation, "a refund reason is required"))
		return
	}
	if err := h.store.RefundTransaction(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	h.store.RecordActivity(actor(c), "refund", "transaction", c.Param("id"), body.Reason)
	response.Message(c, http.StatusOK, "transaction refunded")
}

// LocationHandler manages venues.
type LocationHandler struct {
	store    *Store
	validate *validator.Validate
}

// NewLocationHandler constructs a location handler.
func NewLocationHandler(store *Store) *LocationHandler {
	return &LocationHandler{store: store, validate: validator.New()}
}

type locationBody struct {
	Name      string  `json:"name" validate:"required,max=120"`
	Address   string  `json:"address" validate:"required,max=240"`
	City      string  `json:"city" validate:"required,max=80"`
	Country   string  `json:"country" validate:"required,max=80"`
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// List returns a page of venues.
func (h *LocationHandler) List(c *gin.Context) {
	q := parseQuery(c)
	docs, total := h.store.ListLocations(q)
	response.List(c, "locations fetched", docs, total, q.page, q.limit)
}

// Create validates and stores a venue.
func (h *LocationHandler) Create(c *gin.Context) {
	var body locationBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, errors.Clone(errors.ErrValidation, "invalid location payload"))
		return
	}
	if err := h.validate.Struct(body); err != nil {
		response.Error(c, errors.Clone(errors.ErrValidation, "location failed validation"))
		return
	}
	stored := h.store.InsertLocation(models.Location{
		Name:      body.Name,
		Address:   body.Address,
		City:      body.City,
		Country:   body.Country,
		Latitude:  body.Latitude,
		Longitude: body.Longitude,
	})
	response.Record(c, http.StatusCreated, "location created", "location", stored)
}

// Delete removes a venue.
func (h *LocationHandler) Delete(c *gin.Context) {
	if err := h.store.DeleteLocation(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "location deleted")
}

// ActivityHandler serves the read-only audit log.
type ActivityHandler struct {
	store *Store
}

// NewActivityHandler constructs an activity handler.
func NewActivityHandler(store *Store) *ActivityHandler {
	return &ActivityHandler{store: store}
}

// List returns a page of audit entries.
func (h *ActivityHandler) List(c *gin.Context) {
	q := parseQuery(c)
	docs, total := h.store.ListActivities(q)
	response.List(c, "activities fetched", docs, total, q.page, q.limit)
}

// SupportHandler walks tickets through the support workflow.
type SupportHandler struct {
	store *Store
}

// NewSupportHandler constructs a support handler.
func NewSupportHandler(store *Store) *SupportHandler {
	return &SupportHandler{store: store}
}

// List returns a page of tickets.
func (h *SupportHandler) List(c *gin.Context) {
	q := parseQuery(c)
	docs, total := h.store.ListTickets(q)
	response.List(c, "tickets fetched", docs, total, q.page, q.limit)
}

// Get returns one ticket.
func (h *SupportHandler) Get(c *gin.Context) {
	ticket, err := h.store.GetTicket(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Record(c, http.StatusOK, "ticket fetched", "ticket", ticket)
}

type resolveBody struct {
	Resolution string `json:"resolution"`
}

// Resolve closes the investigation with a mandatory note.
func (h *SupportHandler) Resolve(c *gin.Context) {
	var body resolveBody
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Resolution) == "" {
		response.Error(c, errors.Clone(errors.ErrValidation, "a resolution note is required"))
		return
	}
	err := h.store.UpdateTicket(c.Param("id"), func(t *models.SupportTicket) error {
		if t.Status != models.TicketOpen && t.Status != models.TicketInProgress {
			return errors.Clone(errors.ErrConflict, "only open tickets can be resolved")
		}
		t.Status = models.TicketResolved
		t.Resolution = body.Resolution
		return nil
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "ticket resolved")
}

// Close archives a resolved ticket.
func (h *SupportHandler) Close(c *gin.Context) {
	err := h.store.UpdateTicket(c.Param("id"), func(t *models.SupportTicket) error {
		if t.Status != models.TicketResolved {
			return errors.Clone(errors.ErrConflict, "only resolved tickets can be closed")
		}
		t.Status = models.TicketClosed
		return nil
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "ticket closed")
}

// StatsHandler serves the dashboard headline block.
type StatsHandler struct {
	store *Store
}

// NewStatsHandler constructs a stats handler.
func NewStatsHandler(store *Store) *StatsHandler {
	return &StatsHandler{store: store}
}

// Get returns the computed statistics.
func (h *StatsHandler) Get(c *gin.Context) {
	response.Record(c, http.StatusOK, "stats fetched", "stats", h.store.Stats())
}

// actor names the authenticated admin for audit entries.
func actor(c *gin.Context) string {
	if subject, ok := c.Get(contextSubject); ok {
		if name, ok := subject.(string); ok {
			return name
		}
	}
	return "admin"
}
