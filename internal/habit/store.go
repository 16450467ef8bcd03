package habit

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rnwolfe/momentum/internal/datekey"
	"github.com/rnwolfe/momentum/internal/streak"
)

// Store handles habit persistence.
type Store struct {
	db  *sql.DB
	loc *time.Location
}

// NewStore creates a habit store. Completion days are interpreted in loc.
func NewStore(db *sql.DB, loc *time.Location) *Store {
	if loc == nil {
		loc = time.Local
	}
	return &Store{db: db, loc: loc}
}

// Add creates a habit and returns its ID.
func (s *Store) Add(title string, period datekey.Period, endDate *time.Time) (int, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return 0, fmt.Errorf("habit title must not be empty")
	}
	if !period.Valid() {
		return 0, fmt.Errorf("unknown goal period %q (want day, week, or month)", period)
	}
	var end *string
	if endDate != nil {
		k := datekey.Key(*endDate)
		end = &k
	}
	res, err := s.db.Exec(
		`INSERT INTO habits (title, goal_period, end_date) VALUES (?, ?, ?)`,
		title, string(period), end,
	)
	if err != nil {
		return 0, fmt.Errorf("adding habit: %w", err)
	}
	id, _ := res.LastInsertId()
	return int(id), nil
}

// Get returns a single habit with its completions.
func (s *Store) Get(id int) (*Habit, error) {
	row := s.db.QueryRow(
		`SELECT id, title, goal_period, streak, end_date, created_at FROM habits WHERE id = ?`, id,
	)
	h, err := s.scanHabit(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("habit #%d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting habit #%d: %w", id, err)
	}
	h.CompletedDates, err = s.completions(id)
	if err != nil {
		return nil, err
	}
	return h, nil
}

// List returns all habits with their completions, oldest first.
func (s *Store) List() ([]Habit, error) {
	rows, err := s.db.Query(
		`SELECT id, title, goal_period, streak, end_date, created_at FROM habits ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing habits: %w", err)
	}
	var habits []Habit
	for rows.Next() {
		h, err := s.scanHabit(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		habits = append(habits, *h)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range habits {
		habits[i].CompletedDates, err = s.completions(habits[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return habits, nil
}

// Complete records a completion of habit id on the local day containing at,
// then refreshes the habit's running streak. Logging the same day twice is
// allowed: each entry counts towards total completions.
func (s *Store) Complete(id int, at time.Time, now time.Time) (int, error) {
	h, err := s.Get(id)
	if err != nil {
		return 0, err
	}
	day := datekey.Key(at.In(s.loc))
	if _, err := s.db.Exec(
		`INSERT INTO habit_completions (habit_id, completed_on) VALUES (?, ?)`, id, day,
	); err != nil {
		return 0, fmt.Errorf("logging completion: %w", err)
	}
	d, _ := datekey.ToStartOfLocalDay(day, s.loc)
	dates := append(h.CompletedDates, d)
	current := streak.Current(dates, h.GoalPeriod, now.In(s.loc))
	if _, err := s.db.Exec(`UPDATE habits SET streak = ? WHERE id = ?`, current, id); err != nil {
		return 0, fmt.Errorf("updating streak: %w", err)
	}
	return current, nil
}

// Remove deletes a habit and its completions.
func (s *Store) Remove(id int) error {
	res, err := s.db.Exec(`DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("removing habit: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("habit #%d not found", id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanHabit(row scanner) (*Habit, error) {
	var h Habit
	var period string
	var endStr sql.NullString
	var createdStr string
	if err := row.Scan(&h.ID, &h.Title, &period, &h.Streak, &endStr, &createdStr); err != nil {
		return nil, err
	}
	h.GoalPeriod = datekey.ParsePeriod(period)
	if endStr.Valid && endStr.String != "" {
		if t, ok := datekey.ToStartOfLocalDay(endStr.String, s.loc); ok {
			h.EndDate = &t
		}
	}
	// SQLite CURRENT_TIMESTAMP is UTC.
	if t, err := time.ParseInLocation("2006-01-02 15:04:05", createdStr, time.UTC); err == nil {
		h.CreatedAt = t
	}
	return &h, nil
}

func (s *Store) completions(id int) ([]time.Time, error) {
	rows, err := s.db.Query(
		`SELECT completed_on FROM habit_completions WHERE habit_id = ? ORDER BY completed_on ASC, id ASC`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("loading completions for habit #%d: %w", id, err)
	}
	defer rows.Close()

	var out []time.Time
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, err
		}
		if t, ok := datekey.ToStartOfLocalDay(day, s.loc); ok {
			out = append(out, t)
		}
	}
	return out, rows.Err()
}

// ReplaceAll swaps every stored habit for habits in a single transaction.
// IDs are reassigned; streak counters and completions are kept.
func (s *Store) ReplaceAll(habits []Habit) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM habit_completions`); err != nil {
		return fmt.Errorf("clearing completions: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM habits`); err != nil {
		return fmt.Errorf("clearing habits: %w", err)
	}
	for _, h := range habits {
		var end *string
		if h.EndDate != nil {
			k := datekey.Key(*h.EndDate)
			end = &k
		}
		created := h.CreatedAt
		if created.IsZero() {
			created = time.Now()
		}
		res, err := tx.Exec(
			`INSERT INTO habits (title, goal_period, streak, end_date, created_at) VALUES (?, ?, ?, ?, ?)`,
			h.Title, string(h.GoalPeriod), max(0, h.Streak), end, created.UTC().Format("2006-01-02 15:04:05"),
		)
		if err != nil {
			return fmt.Errorf("importing habit %q: %w", h.Title, err)
		}
		id, _ := res.LastInsertId()
		for _, d := range h.CompletedDates {
			if _, err := tx.Exec(
				`INSERT INTO habit_completions (habit_id, completed_on) VALUES (?, ?)`, id, datekey.Key(d.In(s.loc)),
			); err != nil {
				return fmt.Errorf("importing completions for %q: %w", h.Title, err)
			}
		}
	}
	return tx.Commit()
}
