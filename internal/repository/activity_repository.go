package repository

import (
	"context"
	"database/sql"
	"time"
)

// Participant is a denormalized snapshot of a user's identity taken when
// they created or joined an activity. There is no foreign key back to the
// users table: renaming a user does not rewrite existing snapshots.
type Participant struct {
	Username string
	Avatar   string
}

// Activity mirrors the 'activities' table with its participant rows
// attached.
type Activity struct {
	ID           uint64
	Title        string
	Location     string
	Time         string // free-text display string, e.g. "7:00AM, 11/07/2025"
	MaxAttendees int
	Creator      Participant
	Participants []Participant
	CreatedAt    time.Time
}

type ActivityRepo struct{ DB *sql.DB }

func NewActivityRepo(db *sql.DB) *ActivityRepo { return &ActivityRepo{DB: db} }

// querier is satisfied by both *sql.DB and *sql.Tx so reads can run inside
// an open transaction.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Create inserts the activity together with its creator participant row in
// one transaction. The creator joins their own activity immediately.
func (r *ActivityRepo) Create(ctx context.Context, title, location, timeStr string, maxAttendees int, creator Participant) (Activity, error) {
	var a Activity
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return a, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO activities (title, location, time, max_attendees, creator_username, creator_avatar) VALUES (?,?,?,?,?,?)",
		title, location, timeStr, maxAttendees, creator.Username, creator.Avatar)
	if err != nil {
		return a, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return a, err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO participants (activity_id, username, avatar) VALUES (?,?,?)",
		uint64(id), creator.Username, creator.Avatar); err != nil {
		return a, err
	}
	if err := tx.Commit(); err != nil {
		return a, err
	}
	committed = true

	return Activity{
		ID:           uint64(id),
		Title:        title,
		Location:     location,
		Time:         timeStr,
		MaxAttendees: maxAttendees,
		Creator:      creator,
		Participants: []Participant{creator},
	}, nil
}

// List returns every activity with its participants. Activities without
// participant rows come back with an empty slice, never nil.
func (r *ActivityRepo) List(ctx context.Context) ([]Activity, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,title,location,time,max_attendees,creator_username,creator_avatar FROM activities ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Activity{}
	index := map[uint64]int{}
	for rows.Next() {
		var a Activity
		if err := rows.Scan(&a.ID, &a.Title, &a.Location, &a.Time, &a.MaxAttendees, &a.Creator.Username, &a.Creator.Avatar); err != nil {
			return nil, err
		}
		a.Participants = []Participant{}
		index[a.ID] = len(out)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	prows, err := r.DB.QueryContext(ctx,
		"SELECT activity_id,username,avatar FROM participants ORDER BY activity_id,id")
	if err != nil {
		return nil, err
	}
	defer prows.Close()
	for prows.Next() {
		var aid uint64
		var p Participant
		if err := prows.Scan(&aid, &p.Username, &p.Avatar); err != nil {
			return nil, err
		}
		if i, ok := index[aid]; ok {
			out[i].Participants = append(out[i].Participants, p)
		}
	}
	return out, prows.Err()
}

// get fetches one activity with its participants through q, which is the
// open transaction when called from Join or Leave.
func get(ctx context.Context, q querier, id uint64) (Activity, error) {
	var a Activity
	err := q.QueryRowContext(ctx,
		"SELECT id,title,location,time,max_attendees,creator_username,creator_avatar FROM activities WHERE id=? LIMIT 1",
		id).Scan(&a.ID, &a.Title, &a.Location, &a.Time, &a.MaxAttendees, &a.Creator.Username, &a.Creator.Avatar)
	if err == sql.ErrNoRows {
		return a, ErrActivityNotFound
	}
	if err != nil {
		return a, err
	}
	a.Participants = []Participant{}
	rows, err := q.QueryContext(ctx,
		"SELECT username,avatar FROM participants WHERE activity_id=? ORDER BY id", id)
	if err != nil {
		return a, err
	}
	defer rows.Close()
	for rows.Next() {
		var p Participant
		if err := rows.Scan(&p.Username, &p.Avatar); err != nil {
			return a, err
		}
		a.Participants = append(a.Participants, p)
	}
	return a, rows.Err()
}

// Join appends a participant after checking the duplicate and capacity
// rules. The whole read-modify-write runs in one transaction holding a row
// lock on the activity, so two concurrent joins cannot race past the
// capacity check.
func (r *ActivityRepo) Join(ctx context.Context, id uint64, username, avatar string) (Activity, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return Activity{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var maxAttendees int
	err = tx.QueryRowContext(ctx,
		"SELECT max_attendees FROM activities WHERE id=? FOR UPDATE", id).Scan(&maxAttendees)
	if err == sql.ErrNoRows {
		return Activity{}, ErrActivityNotFound
	}
	if err != nil {
		return Activity{}, err
	}

	var joined bool
	if err := tx.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM participants WHERE activity_id=? AND username=?)",
		id, username).Scan(&joined); err != nil {
		return Activity{}, err
	}
	if joined {
		return Activity{}, ErrAlreadyJoined
	}

	var count int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM participants WHERE activity_id=?", id).Scan(&count); err != nil {
		return Activity{}, err
	}
	if count >= maxAttendees {
		return Activity{}, ErrActivityFull
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO participants (activity_id, username, avatar) VALUES (?,?,?)",
		id, username, avatar); err != nil {
		return Activity{}, err
	}

	// Read the final state before commit so the snapshot cannot race a
	// concurrent delete of the activity.
	a, err := get(ctx, tx, id)
	if err != nil {
		return Activity{}, err
	}
	if err := tx.Commit(); err != nil {
		return Activity{}, err
	}
	committed = true
	return a, nil
}

// Leave removes the matching participant. Removing a user who was never a
// participant is a no-op, not an error.
func (r *ActivityRepo) Leave(ctx context.Context, id uint64, username string) (Activity, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return Activity{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var exists uint64
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM activities WHERE id=? FOR UPDATE", id).Scan(&exists)
	if err == sql.ErrNoRows {
		return Activity{}, ErrActivityNotFound
	}
	if err != nil {
		return Activity{}, err
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM participants WHERE activity_id=? AND username=?", id, username); err != nil {
		return Activity{}, err
	}

	a, err := get(ctx, tx, id)
	if err != nil {
		return Activity{}, err
	}
	if err := tx.Commit(); err != nil {
		return Activity{}, err
	}
	committed = true
	return a, nil
}

// Delete removes the activity permanently. Only the creator may delete;
// participant rows go with it via the ON DELETE CASCADE foreign key.
func (r *ActivityRepo) Delete(ctx context.Context, id uint64, username string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var creator string
	err = tx.QueryRowContext(ctx,
		"SELECT creator_username FROM activities WHERE id=? FOR UPDATE", id).Scan(&creator)
	if err == sql.ErrNoRows {
		return ErrActivityNotFound
	}
	if err != nil {
		return err
	}
	if creator != username {
		return ErrForbidden
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM activities WHERE id=?", id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
