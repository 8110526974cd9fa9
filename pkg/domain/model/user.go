package model

import (
	"time"

	"github.com/mnemo-app/mnemo/pkg/domain/types"
)

// User is the owner of all memory records. MemorySummary is an append-only
// narrative grown by the consolidation pipeline; LastQuestion/LastAnswer
// cache the most recent exchange for context assembly.
type User struct {
	ID            types.UserID
	Name          string
	Email         string
	MemorySummary string
	WeeklyGoal    string
	LastQuestion  string
	LastAnswer    string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
