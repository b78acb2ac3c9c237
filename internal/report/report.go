// Package report derives the admin views from an already-fetched transaction
// list. Everything here is a pure function recomputed per call; the dataset of
// a single stall is small enough that incremental maintenance would be
// over-engineering.
package report

import (
	"strings"
	"time"

	"github.com/SilfaSalsaBilaPutri/CashFlow-Secure/internal/models"
)

func sameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// TodayTransactions filters to records created on now's calendar day, in now's
// location.
func TodayTransactions(all []models.Transaction, now time.Time) []models.Transaction {
	var today []models.Transaction
	for _, tx := range all {
		if sameDay(tx.CreatedAt, now, now.Location()) {
			today = append(today, tx)
		}
	}
	return today
}

// TodayTotal sums revenue over today's transactions.
func TodayTotal(all []models.Transaction, now time.Time) int {
	total := 0
	for _, tx := range TodayTransactions(all, now) {
		total += tx.Total
	}
	return total
}

// CustomerRollups groups by trimmed, case-sensitive customer name. Names are
// already plaintext here (the store decrypts on read), so grouping operates on
// the human-readable name. Nameless records are excluded. The most-recent
// timestamp uses strict greater-than, so on a tie the record seen first in
// input order wins. Result keeps first-seen order.
func CustomerRollups(all []models.Transaction) []models.CustomerRollup {
	index := make(map[string]int)
	var rollups []models.CustomerRollup

	for _, tx := range all {
		if tx.CustomerName == nil {
			continue
		}
		name := strings.TrimSpace(*tx.CustomerName)
		if name == "" {
			continue
		}

		pos, ok := index[name]
		if !ok {
			index[name] = len(rollups)
			rollups = append(rollups, models.CustomerRollup{
				Name:              name,
				TotalTransactions: 1,
				TotalSpent:        tx.Total,
				LastTransactionAt: tx.CreatedAt,
				PaymentMethods:    []models.PaymentMethod{tx.PaymentMethod},
			})
			continue
		}

		r := &rollups[pos]
		r.TotalTransactions++
		r.TotalSpent += tx.Total
		if tx.CreatedAt.After(r.LastTransactionAt) {
			r.LastTransactionAt = tx.CreatedAt
		}
		if !containsMethod(r.PaymentMethods, tx.PaymentMethod) {
			r.PaymentMethods = append(r.PaymentMethods, tx.PaymentMethod)
		}
	}
	return rollups
}

func containsMethod(methods []models.PaymentMethod, m models.PaymentMethod) bool {
	for _, have := range methods {
		if have == m {
			return true
		}
	}
	return false
}

// DailyRollups folds the last windowDays calendar days (today included) into
// per-day revenue and counts, zero-filled for quiet days. Records outside the
// window are dropped even if present in the input. The result is
// date-ascending.
func DailyRollups(all []models.Transaction, now time.Time, windowDays int) []models.DailyRollup {
	if windowDays < 1 {
		return nil
	}
	loc := now.Location()

	rollups := make([]models.DailyRollup, windowDays)
	index := make(map[string]int, windowDays)
	for i := 0; i < windowDays; i++ {
		day := now.AddDate(0, 0, i-windowDays+1)
		key := day.In(loc).Format(time.DateOnly)
		rollups[i] = models.DailyRollup{Date: key}
		index[key] = i
	}

	for _, tx := range all {
		key := tx.CreatedAt.In(loc).Format(time.DateOnly)
		pos, ok := index[key]
		if !ok {
			continue
		}
		rollups[pos].Revenue += tx.Total
		rollups[pos].TransactionCount++
	}
	return rollups
}

// PaymentMethodDistribution counts records per payment method over the full
// input, not windowed.
func PaymentMethodDistribution(all []models.Transaction) map[models.PaymentMethod]int {
	dist := make(map[models.PaymentMethod]int)
	for _, tx := range all {
		dist[tx.PaymentMethod]++
	}
	return dist
}

// Summarize backs the admin dashboard cards: lifetime revenue and counts,
// distinct named customers, plus today's slice.
func Summarize(all []models.Transaction, now time.Time) models.Summary {
	s := models.Summary{TotalTransactions: len(all)}
	customers := make(map[string]struct{})

	for _, tx := range all {
		s.TotalRevenue += tx.Total
		if tx.CustomerName != nil {
			if name := strings.TrimSpace(*tx.CustomerName); name != "" {
				customers[name] = struct{}{}
			}
		}
	}
	s.TotalCustomers = len(customers)
	s.TodayTransactions = len(TodayTransactions(all, now))
	s.TodayRevenue = TodayTotal(all, now)
	return s
}
