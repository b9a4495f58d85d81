package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"invare-backend/internal/domain"
	"invare-backend/internal/repository"

	"github.com/lib/pq"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) UpsertToken(ctx context.Context, t *domain.PushToken) error {
	// A token moves to whoever registered it last.
	query := `INSERT INTO push_tokens (user_id, role, fcm_token, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $4)
	          ON CONFLICT (fcm_token) DO UPDATE SET user_id = EXCLUDED.user_id, role = EXCLUDED.role, updated_on = EXCLUDED.updated_on
	          RETURNING id`
	return r.db.QueryRowContext(ctx, query, t.UserID, t.Role, t.FCMToken, time.Now()).Scan(&t.ID)
}

func (r *notificationRepository) DeleteToken(ctx context.Context, fcmToken string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM push_tokens WHERE fcm_token = $1`, fcmToken)
	return err
}

func (r *notificationRepository) DeleteTokens(ctx context.Context, fcmTokens []string) error {
	if len(fcmTokens) == 0 {
		return nil
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM push_tokens WHERE fcm_token = ANY($1)`, pq.Array(fcmTokens))
	return err
}

func (r *notificationRepository) ListTokens(ctx context.Context, userID int32, role domain.UserRole) ([]string, error) {
	query := `SELECT fcm_token FROM push_tokens WHERE 1=1`
	args := []interface{}{}
	argIdx := 1
	if userID != 0 {
		query += fmt.Sprintf(" AND user_id = $%d", argIdx)
		args = append(args, userID)
		argIdx++
	}
	if role != "" {
		query += fmt.Sprintf(" AND role = $%d", argIdx)
		args = append(args, role)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, rows.Err()
}

func (r *notificationRepository) CreateLog(ctx context.Context, l *domain.NotificationLog) error {
	var dataJSON []byte
	if l.Data != nil {
		var err error
		dataJSON, err = json.Marshal(l.Data)
		if err != nil {
			return fmt.Errorf("encode notification data: %w", err)
		}
	}
	query := `INSERT INTO notification_logs (user_id, role, title, body, data, read, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $7) RETURNING id`
	return r.db.QueryRowContext(ctx, query, l.UserID, l.Role, l.Title, l.Body, dataJSON, l.Read, time.Now()).Scan(&l.ID)
}

func (r *notificationRepository) ListLogs(ctx context.Context, userID int32, read *bool, limit int32) ([]domain.NotificationLog, error) {
	if limit < 1 {
		limit = 50
	}
	query := `SELECT id, user_id, role, title, body, data, read, created_on, updated_on FROM notification_logs WHERE user_id = $1`
	args := []interface{}{userID}
	if read != nil {
		query += ` AND read = $2`
		args = append(args, *read)
	}
	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d", len(args)+1)
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []domain.NotificationLog
	for rows.Next() {
		var l domain.NotificationLog
		var dataJSON []byte
		if err := rows.Scan(&l.ID, &l.UserID, &l.Role, &l.Title, &l.Body, &dataJSON, &l.Read, &l.CreatedOn, &l.UpdatedOn); err != nil {
			return nil, err
		}
		if len(dataJSON) > 0 {
			if err := json.Unmarshal(dataJSON, &l.Data); err != nil {
				return nil, fmt.Errorf("decode notification data: %w", err)
			}
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (r *notificationRepository) MarkLogRead(ctx context.Context, logID, userID int32) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notification_logs SET read = true, updated_on = $1 WHERE id = $2 AND user_id = $3`,
		time.Now(), logID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *notificationRepository) MarkAllLogsRead(ctx context.Context, userID int32) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notification_logs SET read = true, updated_on = $1 WHERE user_id = $2 AND read = false`,
		time.Now(), userID)
	return err
}

func (r *notificationRepository) ClearLogs(ctx context.Context, userID int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM notification_logs WHERE user_id = $1`, userID)
	return err
}
