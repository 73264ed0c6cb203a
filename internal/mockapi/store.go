package mockapi

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/evlive/admin-console/internal/models"
	"github.com/evlive/admin-console/pkg/errors"
)

// Store is the fixture server's in-memory dataset. All access goes
// through the mutex; handlers never touch the slices directly.
type Store struct {
	mu sync.Mutex

	events       []models.Event
	accounts     []models.Account
	transactions []models.Transaction
	locations    []models.Location
	activities   []models.Activity
	tickets      []models.SupportTicket
}

// query is the parsed list-request shape shared by every resource.
type query struct {
	page      int
	limit     int
	sortBy    string
	sortOrder string
	search    string
	filters   map[string]string
	start     *time.Time
	end       *time.Time
}

func (q query) filter(key string) string { return q.filters[key] }

func (q query) inRange(t time.Time) bool {
	if q.start != nil && t.Before(*q.start) {
		return false
	}
	if q.end != nil && t.After(q.end.Add(24*time.Hour)) {
		return false
	}
	return true
}

func matches(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// paginate slices items to the requested window, returning the window
// and the pre-pagination total.
func paginate[T any](items []T, q query) ([]T, int) {
	total := len(items)
	start := (q.page - 1) * q.limit
	if start >= total {
		return []T{}, total
	}
	end := start + q.limit
	if end > total {
		end = total
	}
	return items[start:end], total
}

func orderBy[T any](items []T, less func(a, b T) bool, descending bool) {
	sort.SliceStable(items, func(i, j int) bool {
		if descending {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}

// ListEvents applies the events screen's filters, search, date range,
// and sort before paginating.
func (s *Store) ListEvents(q query) ([]models.Event, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := make([]models.Event, 0, len(s.events))
	for _, e := range s.events {
		if v := q.filter("status"); v != "" && string(deriveStatus(e)) != v {
			continue
		}
		if v := q.filter("adminStatus"); v != "" && string(e.AdminStatus) != v {
			continue
		}
		if v := q.filter("category"); v != "" && e.Category != v {
			continue
		}
		if !q.inRange(e.Date) {
			continue
		}
		if q.search != "" && !matches(e.Title, q.search) && !matches(e.Organiser, q.search) {
			continue
		}
		e.Status = deriveStatus(e)
		filtered = append(filtered, e)
	}

	descending := q.sortOrder != "asc"
	switch q.sortBy {
	case "title":
		orderBy(filtered, func(a, b models.Event) bool { return a.Title < b.Title }, descending)
	case "createdAt":
		orderBy(filtered, func(a, b models.Event) bool { return a.CreatedAt.Before(b.CreatedAt) }, descending)
	default:
		orderBy(filtered, func(a, b models.Event) bool { return a.Date.Before(b.Date) }, descending)
	}
	return paginate(filtered, q)
}

// deriveStatus computes the lifecycle state from the event date and
// stream flag, the way the production API does server-side.
func deriveStatus(e models.Event) models.EventStatus {
	if e.StreamLive {
		return models.EventLive
	}
	if e.Date.Before(time.Now()) {
		return models.EventPast
	}
	return models.EventUpcoming
}

// GetEvent returns the event or ErrNotFound.
func (s *Store) GetEvent(id string) (models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.events {
		if e.ID == id {
			e.Status = deriveStatus(e)
			return e, nil
		}
	}
	return models.Event{}, errors.Clone(errors.ErrNotFound, "event not found")
}

// UpdateEvent applies fn to the stored event under the lock.
func (s *Store) UpdateEvent(id string, fn func(*models.Event) error) (models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.events {
		if s.events[i].ID == id {
			if err := fn(&s.events[i]); err != nil {
				return models.Event{}, err
			}
			s.events[i].UpdatedAt = time.Now()
			s.events[i].Status = deriveStatus(s.events[i])
			return s.events[i], nil
		}
	}
	return models.Event{}, errors.Clone(errors.ErrNotFound, "event not found")
}

// InsertEvent stores a new pending event and returns it.
func (s *Store) InsertEvent(e models.Event) models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	e.ID = uuid.NewString()
	e.AdminStatus = models.AdminPending
	e.CreatedAt = now
	e.UpdatedAt = now
	e.Status = deriveStatus(e)
	s.events = append(s.events, e)
	return e
}

// ListAccounts filters one role's accounts.
func (s *Store) ListAccounts(role models.AccountRole, q query) ([]models.Account, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := make([]models.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		if a.Role != role {
			continue
		}
		if v := q.filter("status"); v != "" && string(a.Status) != v {
			continue
		}
		if v := q.filter("locked"); v != "" {
			if (v == "true") != a.Locked {
				continue
			}
		}
		if q.search != "" && !matches(a.Name, q.search) && !matches(a.Email, q.search) {
			continue
		}
		filtered = append(filtered, a)
	}

	descending := q.sortOrder != "asc"
	switch q.sortBy {
	case "email":
		orderBy(filtered, func(a, b models.Account) bool { return a.Email < b.Email }, descending)
	case "createdAt":
		orderBy(filtered, func(a, b models.Account) bool { return a.CreatedAt.Before(b.CreatedAt) }, descending)
	default:
		orderBy(filtered, func(a, b models.Account) bool { return a.Name < b.Name }, descending)
	}
	return paginate(filtered, q)
}

// GetAccount returns the account of a role or ErrNotFound.
func (s *Store) GetAccount(role models.AccountRole, id string) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.ID == id && a.Role == role {
			return a, nil
		}
	}
	return models.Account{}, errors.Clone(errors.ErrNotFound, "account not found")
}

// UpdateAccount applies fn to the stored account under the lock.
func (s *Store) UpdateAccount(role models.AccountRole, id string, fn func(*models.Account) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.accounts {
		if s.accounts[i].ID == id && s.accounts[i].Role == role {
			return fn(&s.accounts[i])
		}
	}
	return errors.Clone(errors.ErrNotFound, "account not found")
}

// ListTransactions filters ticket purchases.
func (s *Store) ListTransactions(q query) ([]models.Transaction, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := make([]models.Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		if v := q.filter("status"); v != "" && string(t.Status) != v {
			continue
		}
		if v := q.filter("currency"); v != "" && t.Currency != v {
			continue
		}
		if !q.inRange(t.CreatedAt) {
			continue
		}
		if q.search != "" && !matches(t.UserName, q.search) && !matches(t.EventName, q.search) {
			continue
		}
		filtered = append(filtered, t)
	}

	descending := q.sortOrder != "asc"
	if q.sortBy == "amount" {
		orderBy(filtered, func(a, b models.Transaction) bool { return a.Amount < b.Amount }, descending)
	} else {
		orderBy(filtered, func(a, b models.Transaction) bool { return a.CreatedAt.Before(b.CreatedAt) }, descending)
	}
	return paginate(filtered, q)
}

// GetTransaction returns the transaction or ErrNotFound.
func (s *Store) GetTransaction(id string) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.transactions {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Transaction{}, errors.Clone(errors.ErrNotFound, "transaction not found")
}

// RefundTransaction moves a completed transaction to refunded.
func (s *Store) RefundTransaction(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.transactions {
		if s.transactions[i].ID == id {
			if s.transactions[i].Status != models.TxnCompleted {
				return errors.Clone(errors.ErrConflict, "only completed transactions can be refunded")
			}
			s.transactions[i].Status = models.TxnRefunded
			return nil
		}
	}
	return errors.Clone(errors.ErrNotFound, "transaction not found")
}

// ListLocations filters venues.
func (s *Store) ListLocations(q query) ([]models.Location, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := make([]models.Location, 0, len(s.locations))
	for _, l := range s.locations {
		if q.search != "" && !matches(l.Name, q.search) && !matches(l.City, q.search) {
			continue
		}
		filtered = append(filtered, l)
	}

	descending := q.sortOrder != "asc"
	if q.sortBy == "city" {
		orderBy(filtered, func(a, b models.Location) bool { return a.City < b.City }, descending)
	} else {
		orderBy(filtered, func(a, b models.Location) bool { return a.Name < b.Name }, descending)
	}
	return paginate(filtered, q)
}

// InsertLocation stores a new venue.
func (s *Store) InsertLocation(l models.Location) models.Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	l.ID = uuid.NewString()
	l.CreatedAt = time.Now()
	s.locations = append(s.locations, l)
	return l
}

// DeleteLocation removes a venue.
func (s *Store) DeleteLocation(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.locations {
		if s.locations[i].ID == id {
			s.locations = append(s.locations[:i], s.locations[i+1:]...)
			return nil
		}
	}
	return errors.Clone(errors.ErrNotFound, "location not found")
}

// ListActivities filters the audit log.
func (s *Store) ListActivities(q query) ([]models.Activity, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := make([]models.Activity, 0, len(s.activities))
	for _, a := range s.activities {
		if !q.inRange(a.CreatedAt) {
			continue
		}
		if q.search != "" && !matches(a.ActorName, q.search) && !matches(a.Action, q.search) {
			continue
		}
		filtered = append(filtered, a)
	}

	descending := q.sortOrder != "asc"
	orderBy(filtered, func(a, b models.Activity) bool { return a.CreatedAt.Before(b.CreatedAt) }, descending)
	return paginate(filtered, q)
}

// RecordActivity appends an audit entry for a mutation.
func (s *Store) RecordActivity(actor, action, targetType, targetID, detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = append(s.activities, models.Activity{
		ID:         uuid.NewString(),
		ActorName:  actor,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Detail:     detail,
		CreatedAt:  time.Now(),
	})
}

// ListTickets filters the support queue.
func (s *Store) ListTickets(q query) ([]models.SupportTicket, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := make([]models.SupportTicket, 0, len(s.tickets))
	for _, t := range s.tickets {
		if v := q.filter("status"); v != "" && string(t.Status) != v {
			continue
		}
		if v := q.filter("priority"); v != "" && string(t.Priority) != v {
			continue
		}
		if q.search != "" && !matches(t.Subject, q.search) && !matches(t.RaisedBy, q.search) {
			continue
		}
		filtered = append(filtered, t)
	}

	descending := q.sortOrder != "asc"
	if q.sortBy == "priority" {
		rank := map[models.TicketPriority]int{models.PriorityLow: 0, models.PriorityMedium: 1, models.PriorityHigh: 2}
		orderBy(filtered, func(a, b models.SupportTicket) bool { return rank[a.Priority] < rank[b.Priority] }, descending)
	} else {
		orderBy(filtered, func(a, b models.SupportTicket) bool { return a.CreatedAt.Before(b.CreatedAt) }, descending)
	}
	return paginate(filtered, q)
}

// GetTicket returns the ticket or ErrNotFound.
func (s *Store) GetTicket(id string) (models.SupportTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tickets {
		if t.ID == id {
			return t, nil
		}
	}
	return models.SupportTicket{}, errors.Clone(errors.ErrNotFound, "ticket not found")
}

// UpdateTicket applies fn to the stored ticket under the lock.
func (s *Store) UpdateTicket(id string, fn func(*models.SupportTicket) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tickets {
		if s.tickets[i].ID == id {
			if err := fn(&s.tickets[i]); err != nil {
				return err
			}
			s.tickets[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return errors.Clone(errors.ErrNotFound, "ticket not found")
}

// Stats computes the dashboard headline block over the dataset.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stats Stats
	stats.TotalEvents = len(s.events)
	for _, e := range s.events {
		if e.StreamLive {
			stats.LiveEvents++
		}
		if e.AdminStatus == models.AdminPending {
			stats.PendingEvents++
		}
	}
	for _, a := range s.accounts {
		if a.Role == models.RoleUser {
			stats.TotalUsers++
		}
	}
	for _, t := range s.tickets {
		if t.Status == models.TicketOpen || t.Status == models.TicketInProgress {
			stats.OpenTickets++
		}
	}
	monthStart := time.Now().AddDate(0, 0, -30)
	stats.RevenueCurrency = "USD"
	for _, t := range s.transactions {
		if t.Status == models.TxnCompleted && t.CreatedAt.After(monthStart) && t.Currency == stats.RevenueCurrency {
			stats.RevenueThisMonth += t.Amount
		}
	}
	return stats
}

// Stats mirrors the dashboard contract.
type Stats struct {
	TotalEvents      int     `json:"totalEvents"`
	LiveEvents       int     `json:"liveEvents"`
	PendingEvents    int     `json:"pendingEvents"`
	TotalUsers       int     `json:"totalUsers"`
	OpenTickets      int     `json:"openTickets"`
	RevenueThisMonth float64 `json:"revenueThisMonth"`
	RevenueCurrency  string  `json:"revenueCurrency"`
}
