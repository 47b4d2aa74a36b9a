package notesdk

import (
	"context"
	"fmt"
	"net/http"
)

// ListNotes returns the authenticated user's notes.
func (c *Client) ListNotes(ctx context.Context) ([]Note, error) {
	resp, err := c.doAuthRequest(ctx, http.MethodGet, notesPath, nil)
	if err != nil {
		return nil, err
	}

	var notes []Note
	if err := decodeJSON(resp, &notes, http.StatusOK); err != nil {
		return nil, err
	}
	return notes, nil
}

// CreateNote creates a note from the draft and returns the stored note.
func (c *Client) CreateNote(ctx context.Context, draft NoteDraft) (*Note, error) {
	resp, err := c.doAuthRequest(ctx, http.MethodPost, notesPath, draft)
	if err != nil {
		return nil, err
	}

	var note Note
	if err := decodeJSON(resp, &note, http.StatusCreated); err != nil {
		return nil, err
	}
	return &note, nil
}

// GetNote fetches a single note by ID.
func (c *Client) GetNote(ctx context.Context, id int64) (*Note, error) {
	resp, err := c.doAuthRequest(ctx, http.MethodGet, notePath(id), nil)
	if err != nil {
		return nil, err
	}

	var note Note
	if err := decodeJSON(resp, &note, http.StatusOK); err != nil {
		return nil, err
	}
	return &note, nil
}

// UpdateNote replaces a note's draft fields and returns the stored note.
func (c *Client) UpdateNote(ctx context.Context, id int64, draft NoteDraft) (*Note, error) {
	resp, err := c.doAuthRequest(ctx, http.MethodPut, notePath(id), draft)
	if err != nil {
		return nil, err
	}

	var note Note
	if err := decodeJSON(resp, &note, http.StatusOK); err != nil {
		return nil, err
	}
	return &note, nil
}

// SetNoteDone flips a note's done flag, preserving its text.
func (c *Client) SetNoteDone(ctx context.Context, id int64, done bool) (*Note, error) {
	note, err := c.GetNote(ctx, id)
	if err != nil {
		return nil, err
	}

	return c.UpdateNote(ctx, id, NoteDraft{
		Title: note.Title,
		Body:  note.Body,
		Done:  done,
	})
}

// DeleteNote removes a note.
func (c *Client) DeleteNote(ctx context.Context, id int64) error {
	resp, err := c.doAuthRequest(ctx, http.MethodDelete, notePath(id), nil)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}

func notePath(id int64) string {
	return fmt.Sprintf("%s%d/", notesPath, id)
}
