package model

import (
	"strings"
	"time"
)

// DateLayout matches the JavaScript Date.toDateString() format, e.g. "Tue Mar 05 2024".
const DateLayout = "Mon Jan 02 2006"

// DiaryOwner is a snapshot of the author taken when the entry is created.
type DiaryOwner struct {
	ID       string
	Username string
}

type DiaryEntry struct {
	ID        string
	Content   []string
	Dates     []string
	User      DiaryOwner
	CreatedAt time.Time
}

func (d *DiaryEntry) Text() string {
	return strings.Join(d.Content, "\n")
}

func (d *DiaryEntry) Date() string {
	if len(d.Dates) == 0 {
		return ""
	}
	return d.Dates[0]
}

func (d *DiaryEntry) OwnedBy(userID string) bool {
	return userID != "" && d.User.ID == userID
}
