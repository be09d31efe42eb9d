package domain

import "time"

// TaskStatus is a two-state machine; either state may follow the other.
type TaskStatus string

const (
	TaskPending TaskStatus = "Pending"
	TaskDone    TaskStatus = "Done"
)

const (
	MaxTitleLength       = 50
	MaxDescriptionLength = 255
)

func (s TaskStatus) Valid() bool {
	return s == TaskPending || s == TaskDone
}

// Task represents a user-owned activity item.
type Task struct {
	ID          int64      `json:"id"`
	OwnerID     int64      `json:"owner_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"-"`
	UpdatedAt   time.Time  `json:"-"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Status == TaskDone
}

// TaskPatch describes an edit. Nil Title or Description leave the stored
// value unchanged; Status is always written.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      TaskStatus
}

// Validate checks a task about to be created.
func (t *Task) Validate() error {
	if t == nil {
		return ErrInvalidPayload
	}
	if err := validateTitle(t.Title); err != nil {
		return err
	}
	if err := validateDescription(t.Description); err != nil {
		return err
	}
	return validateStatus(t.Status)
}

func (p TaskPatch) Validate() error {
	if p.Title != nil {
		if err := validateTitle(*p.Title); err != nil {
			return err
		}
	}
	if err := validateDescription(p.Description); err != nil {
		return err
	}
	return validateStatus(p.Status)
}

func validateTitle(title string) error {
	if title == "" {
		return Invalid("title is required")
	}
	if len([]rune(title)) > MaxTitleLength {
		return Invalid("title must be at most 50 characters")
	}
	return nil
}

func validateDescription(description *string) error {
	if description != nil && len([]rune(*description)) > MaxDescriptionLength {
		return Invalid("description must be at most 255 characters")
	}
	return nil
}

func validateStatus(status TaskStatus) error {
	if !status.Valid() {
		return Invalid("status must be one of: Pending, Done")
	}
	return nil
}
