package mockapi

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/evlive/admin-console/internal/models"
)

var (
	seedCategories = []string{"Music", "Comedy", "Conference", "Sport", "Theatre"}
	seedCities     = []struct {
		city, country string
		lat, lng      float64
	}{
		{"Lagos", "Nigeria", 6.5244, 3.3792},
		{"Nairobi", "Kenya", -1.2921, 36.8219},
		{"London", "United Kingdom", 51.5074, -0.1278},
		{"Berlin", "Germany", 52.5200, 13.4050},
		{"Accra", "Ghana", 5.6037, -0.1870},
	}
	seedSubjects = []string{
		"Cannot access my tickets",
		"Stream kept buffering",
		"Refund not received",
		"Wrong event date shown",
		"Organiser payout question",
	}
)

// NewSeededStore builds a dataset deterministic in the seed, so
// screenshots and tests see the same records run to run.
func NewSeededStore(seed int64) *Store {
	rng := rand.New(rand.NewSource(seed))
	now := time.Now()
	store := &Store{}

	id := func() string {
		// uuid from the seeded source keeps IDs stable per seed.
		var b [16]byte
		rng.Read(b[:])
		u, _ := uuid.FromBytes(b[:])
		return u.String()
	}

	var organisers []models.Account
	for i := 0; i < 6; i++ {
		organiser := models.Account{
			ID:        id(),
			Name:      fmt.Sprintf("Organiser %c", 'A'+i),
			Email:     fmt.Sprintf("organiser%d@evlive.dev", i+1),
			Role:      models.RoleOrganiser,
			Status:    models.AccountActive,
			CreatedAt: now.AddDate(0, -rng.Intn(12), 0),
		}
		if i == 5 {
			organiser.Status = models.AccountInactive
		}
		organisers = append(organisers, organiser)
		store.accounts = append(store.accounts, organiser)
	}

	var users []models.Account
	for i := 0; i < 40; i++ {
		lastLogin := now.Add(-time.Duration(rng.Intn(720)) * time.Hour)
		user := models.Account{
			ID:        id(),
			Name:      fmt.Sprintf("User %02d", i+1),
			Email:     fmt.Sprintf("user%02d@example.com", i+1),
			Phone:     fmt.Sprintf("+44 7700 900%03d", i),
			Role:      models.RoleUser,
			Status:    models.AccountActive,
			Locked:    rng.Intn(10) == 0,
			CreatedAt: now.AddDate(0, 0, -rng.Intn(365)),
			LastLogin: &lastLogin,
		}
		if rng.Intn(8) == 0 {
			user.Status = models.AccountInactive
		}
		users = append(users, user)
		store.accounts = append(store.accounts, user)
	}

	for i := 0; i < 3; i++ {
		store.accounts = append(store.accounts, models.Account{
			ID:        id(),
			Name:      fmt.Sprintf("Admin %d", i+1),
			Email:     fmt.Sprintf("admin%d@evlive.dev", i+1),
			Role:      models.RoleAdmin,
			Status:    models.AccountActive,
			CreatedAt: now.AddDate(-1, 0, 0),
		})
	}

	for _, c := range seedCities {
		store.locations = append(store.locations, models.Location{
			ID:        id(),
			Name:      c.city + " Arena",
			Address:   fmt.Sprintf("%d Festival Way", 1+rng.Intn(200)),
			City:      c.city,
			Country:   c.country,
			Latitude:  c.lat,
			Longitude: c.lng,
			CreatedAt: now.AddDate(0, -rng.Intn(6), 0),
		})
	}

	adminStatuses := []models.AdminStatus{models.AdminPending, models.AdminApproved, models.AdminApproved, models.AdminApproved, models.AdminRejected}
	for i := 0; i < 30; i++ {
		organiser := organisers[rng.Intn(len(organisers))]
		adminStatus := adminStatuses[rng.Intn(len(adminStatuses))]
		date := now.AddDate(0, 0, rng.Intn(60)-20)
		event := models.Event{
			ID:          id(),
			Title:       fmt.Sprintf("%s Night %d", seedCategories[rng.Intn(len(seedCategories))], i+1),
			Description: "An evening you will not forget.",
			Category:    seedCategories[rng.Intn(len(seedCategories))],
			Date:        date,
			AdminStatus: adminStatus,
			OrganiserID: organiser.ID,
			Organiser:   organiser.Name,
			LocationID:  store.locations[rng.Intn(len(store.locations))].ID,
			CreatedAt:   date.AddDate(0, 0, -30),
			UpdatedAt:   date.AddDate(0, 0, -7),
		}
		if rng.Intn(4) > 0 {
			event.Prices = []models.Price{{Currency: "USD", Amount: float64(10 + rng.Intn(90))}}
			if rng.Intn(2) == 0 {
				event.Prices = append(event.Prices, models.Price{Currency: "EUR", Amount: float64(10 + rng.Intn(90))})
			}
		}
		if adminStatus == models.AdminApproved && date.After(now) && rng.Intn(6) == 0 {
			event.StreamLive = true
		}
		if adminStatus == models.AdminRejected {
			event.RejectReason = "Listing did not meet the content guidelines"
		}
		store.events = append(store.events, event)
	}

	txnStatuses := []models.TransactionStatus{
		models.TxnCompleted, models.TxnCompleted, models.TxnCompleted,
		models.TxnPending, models.TxnFailed, models.TxnRefunded,
	}
	for i := 0; i < 80; i++ {
		user := users[rng.Intn(len(users))]
		event := store.events[rng.Intn(len(store.events))]
		amount := 10 + rng.Intn(90)
		store.transactions = append(store.transactions, models.Transaction{
			ID:        id(),
			UserID:    user.ID,
			UserName:  user.Name,
			EventID:   event.ID,
			EventName: event.Title,
			Amount:    float64(amount),
			Currency:  "USD",
			Status:    txnStatuses[rng.Intn(len(txnStatuses))],
			CreatedAt: now.Add(-time.Duration(rng.Intn(1440)) * time.Hour),
		})
	}

	ticketStatuses := []models.TicketStatus{models.TicketOpen, models.TicketOpen, models.TicketInProgress, models.TicketResolved, models.TicketClosed}
	priorities := []models.TicketPriority{models.PriorityLow, models.PriorityMedium, models.PriorityMedium, models.PriorityHigh}
	for i := 0; i < 20; i++ {
		user := users[rng.Intn(len(users))]
		status := ticketStatuses[rng.Intn(len(ticketStatuses))]
		ticket := models.SupportTicket{
			ID:         id(),
			Subject:    seedSubjects[rng.Intn(len(seedSubjects))],
			Body:       "Reported from the mobile app.",
			RaisedByID: user.ID,
			RaisedBy:   user.Name,
			Status:     status,
			Priority:   priorities[rng.Intn(len(priorities))],
			CreatedAt:  now.Add(-time.Duration(rng.Intn(500)) * time.Hour),
			UpdatedAt:  now.Add(-time.Duration(rng.Intn(100)) * time.Hour),
		}
		if status == models.TicketResolved || status == models.TicketClosed {
			ticket.Resolution = "Resolved after checking the account"
		}
		store.tickets = append(store.tickets, ticket)
	}

	for i := 0; i < 25; i++ {
		event := store.events[rng.Intn(len(store.events))]
		store.activities = append(store.activities, models.Activity{
			ID:         id(),
			ActorName:  fmt.Sprintf("Admin %d", 1+rng.Intn(3)),
			Action:     []string{"approve", "reject", "unpublish", "lock"}[rng.Intn(4)],
			TargetType: "event",
			TargetID:   event.ID,
			Detail:     event.Title,
			CreatedAt:  now.Add(-time.Duration(rng.Intn(2000)) * time.Hour),
		})
	}

	return store
}
