package topics

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, topic Topic) error {
	const query = `
INSERT INTO topics (id, name, questions, created_at)
VALUES ($1, $2, $3, now())`
	questions, err := json.Marshal(topic.Questions)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query, topic.ID, topic.Name, questions)
	if err != nil && strings.Contains(err.Error(), "topics_name_key") {
		return ErrAlreadyExists
	}
	return err
}

func (r *PGRepo) GetByName(ctx context.Context, name string) (Topic, error) {
	const query = `
SELECT id, name, questions, created_at
FROM topics
WHERE name = $1
LIMIT 1`
	var topic Topic
	var questions []byte
	err := r.DB.QueryRowContext(ctx, query, name).Scan(
		&topic.ID,
		&topic.Name,
		&questions,
		&topic.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Topic{}, ErrNotFound
		}
		return Topic{}, err
	}
	if len(questions) > 0 {
		if err := json.Unmarshal(questions, &topic.Questions); err != nil {
			return Topic{}, err
		}
	}
	return topic, nil
}

func (r *PGRepo) ListNames(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT name FROM topics ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *PGRepo) DeleteByName(ctx context.Context, name string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM topics WHERE name = $1`, name)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
