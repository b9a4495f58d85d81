package jobs

import (
	"context"
	"fmt"
	"time"

	"invare-backend/internal/logger"
)

// RollPaymentStatuses advances payment statuses against the calendar:
// upcoming payments inside the due-soon window become due_soon, and anything
// unpaid past its due date becomes due. Paid payments are never touched.
func (jr *JobRunner) RollPaymentStatuses() {
	jr.runWithRecovery("RollPaymentStatuses", func() {
		ctx := context.Background()
		now := time.Now()
		window := jr.config.Projects.DueSoonWindowDays

		result, err := jr.db.ExecContext(ctx, `
			UPDATE payments
			SET status = 'due', updated_on = $1
			WHERE status IN ('upcoming', 'due_soon') AND due_date < $1`,
			now)
		if err != nil {
			logger.Error("Failed to mark due payments", "error", err)
			return
		}
		dueCount, _ := result.RowsAffected()

		result, err = jr.db.ExecContext(ctx, `
			UPDATE payments
			SET status = 'due_soon', updated_on = $1
			WHERE status = 'upcoming' AND due_date >= $1 AND due_date <= $2`,
			now, now.AddDate(0, 0, window))
		if err != nil {
			logger.Error("Failed to mark due_soon payments", "error", err)
			return
		}
		dueSoonCount, _ := result.RowsAffected()

		logger.Info("Payment statuses rolled",
			"marked_due", dueCount,
			"marked_due_soon", dueSoonCount,
			"window_days", window)
	})
}

// SendPaymentReminders emails each client that has a payment currently due or
// coming due.
func (jr *JobRunner) SendPaymentReminders() {
	jr.runWithRecovery("SendPaymentReminders", func() {
		ctx := context.Background()

		query := `
			SELECT p.title_en, p.amount, p.due_date, p.status, u.name, u.email
			FROM payments p
			JOIN users u ON u.id = p.user_id
			WHERE p.status IN ('due', 'due_soon')
			ORDER BY p.due_date`
		rows, err := jr.db.QueryContext(ctx, query)
		if err != nil {
			logger.Error("Failed to query reminder payments", "error", err)
			return
		}
		defer rows.Close()

		sent := 0
		for rows.Next() {
			var title, status, name, email string
			var amount float64
			var dueDate time.Time
			if err := rows.Scan(&title, &amount, &dueDate, &status, &name, &email); err != nil {
				logger.Error("Failed to scan reminder payment", "error", err)
				return
			}

			subject := fmt.Sprintf("Payment reminder: %s", title)
			body := fmt.Sprintf("Your payment %q of %.2f is %s (due %s).",
				title, amount, reminderWording(status), dueDate.Format("2006-01-02"))
			if err := jr.services.Email.Send(email, name, subject, body, ""); err != nil {
				logger.Error("Failed to send payment reminder", "email", email, "error", err)
				continue
			}
			sent++
		}
		if err := rows.Err(); err != nil {
			logger.Error("Failed reading reminder payments", "error", err)
			return
		}

		logger.Info("Payment reminders sent", "count", sent)
	})
}

func reminderWording(status string) string {
	if status == "due" {
		return "now due"
	}
	return "due soon"
}
