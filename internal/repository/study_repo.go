package repository

import (
	"context"
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"studymate-backend/internal/models"
)

// tableNamePattern gates the configured table name before it is spliced into
// SQL; identifiers cannot be bound as query parameters.
var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// StudyRepo reads and writes saved Q&A rows. The table name comes from
// configuration.
type StudyRepo struct {
	pool  *pgxpool.Pool
	table string
}

func NewStudyRepo(pool *pgxpool.Pool, table string) *StudyRepo {
	if !tableNamePattern.MatchString(table) {
		panic(fmt.Sprintf("invalid study table name %q", table))
	}
	return &StudyRepo{pool: pool, table: table}
}

// InsertRecord appends one row. There is no conflict handling: re-saving a
// topic adds rows rather than replacing them.
func (r *StudyRepo) InsertRecord(ctx context.Context, rec *models.StudyRecord) error {
	query := fmt.Sprintf(`INSERT INTO %s (user_id, topic, question_num, question, answer)
		VALUES ($1, $2, $3, $4, $5) RETURNING created_at`, r.table)

	return r.pool.QueryRow(ctx, query,
		rec.UserID, rec.Topic, rec.QuestionNum, rec.Question, rec.Answer,
	).Scan(&rec.CreatedAt)
}

// ListTopics returns every topic value stored for the user, duplicates
// included; deduplication is the caller's concern.
func (r *StudyRepo) ListTopics(ctx context.Context, userID uuid.UUID) ([]string, error) {
	query := fmt.Sprintf("SELECT topic FROM %s WHERE user_id = $1", r.table)

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var topics []string
	for rows.Next() {
		var topic string
		if err := rows.Scan(&topic); err != nil {
			return nil, err
		}
		topics = append(topics, topic)
	}
	return topics, rows.Err()
}

// GetByTopicAndUser returns the user's rows for a topic ordered by question
// number.
func (r *StudyRepo) GetByTopicAndUser(ctx context.Context, topic string, userID uuid.UUID) ([]models.StudyRecord, error) {
	query := fmt.Sprintf(`SELECT user_id, topic, question_num, question, answer, created_at
		FROM %s WHERE topic = $1 AND user_id = $2 ORDER BY question_num`, r.table)

	rows, err := r.pool.Query(ctx, query, topic, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

// GetByTopic returns every user's rows for a topic ordered by question
// number. Quiz mode is user-agnostic.
func (r *StudyRepo) GetByTopic(ctx context.Context, topic string) ([]models.StudyRecord, error) {
	query := fmt.Sprintf(`SELECT user_id, topic, question_num, question, answer, created_at
		FROM %s WHERE topic = $1 ORDER BY question_num`, r.table)

	rows, err := r.pool.Query(ctx, query, topic)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanRecords(rows rowScanner) ([]models.StudyRecord, error) {
	var records []models.StudyRecord
	for rows.Next() {
		var rec models.StudyRecord
		err := rows.Scan(&rec.UserID, &rec.Topic, &rec.QuestionNum, &rec.Question, &rec.Answer, &rec.CreatedAt)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
