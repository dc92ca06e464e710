package models

import "time"

// Event status constants
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Item classification constants
const (
	ClassWinner = "winner"
	ClassTied   = "tied"
	ClassNone   = "none"
)

// Request types

type CreateEventRequest struct {
	Topic       string `json:"topic"`
	CreatorName string `json:"creatorName"`
}

// Nil fields are left unchanged
type UpdateEventRequest struct {
	Topic    *string `json:"topic"`
	Date     *string `json:"date"`
	Time     *string `json:"time"`
	Location *string `json:"location"`
}

type SetStatusRequest struct {
	Status string `json:"status"`
}

type SaveMenuRequest struct {
	MenuData *Menu `json:"menuData"`
}

type AddVoterRequest struct {
	Name string `json:"name"`
}

// category name -> selected item names
type SubmitVoteRequest struct {
	EventID    string              `json:"eventId"`
	SheetName  string              `json:"sheetName"`
	VoterName  string              `json:"voterName"`
	Selections map[string][]string `json:"selections"`
}

// Response types

type EventResponse struct {
	Success bool  `json:"success"`
	Event   Event `json:"event"`
}

type StatusResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
}

type MenuResponse struct {
	Success  bool `json:"success"`
	MenuData Menu `json:"menuData"`
}

type VotersResponse struct {
	Success bool     `json:"success"`
	Voters  []string `json:"voters"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type ResultsResponse struct {
	Sheet        string              `json:"sheet"`
	TotalVotes   int                 `json:"totalVotes"`
	Tally        map[string]int      `json:"tally"`
	VotersByItem map[string][]string `json:"votersByItem"`
	VotesList    []Vote              `json:"votesList"`
	Categories   []CategoryResult    `json:"categories"`
}

// sheet name -> category name -> items
type VoterVotesResponse struct {
	Success      bool                           `json:"success"`
	Votes        map[string]map[string][]string `json:"votes"`
	SubmittedAt  map[string]time.Time           `json:"submittedAt"`
	SubmittedAgo map[string]string              `json:"submittedAgo"`
}

// Domain types

type Event struct {
	ID            string    `json:"id"`
	Topic         string    `json:"topic"`
	CreatorName   string    `json:"creatorName"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Location      string    `json:"location"`
	Status        string    `json:"status"`
	MenuData      Menu      `json:"menuData"`
	AllowedVoters []string  `json:"allowedVoters"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Category is a group of competing items; a voter picks 1..Quota of them.
type Category struct {
	Name  string   `json:"category"`
	Quota int      `json:"quota"`
	Items []string `json:"items"`
}

type Sheet struct {
	Name       string
	Categories []Category
}

type Vote struct {
	VoterName  string              `json:"voterName"`
	Selections map[string][]string `json:"selections"`
	Timestamp  time.Time           `json:"timestamp"`
}

// Tally is derived per sheet and never persisted.
// Items nobody picked are absent from both maps.
type Tally struct {
	Counts map[string]int
	Voters map[string][]string
}

// Result types

type RankedItem struct {
	Item           string   `json:"item"`
	Count          int      `json:"count"`
	Voters         []string `json:"voters"`
	Classification string   `json:"classification"`
}

type CategoryResult struct {
	Category         string       `json:"category"`
	Quota            int          `json:"quota"`
	Threshold        int          `json:"threshold"`
	HasUnresolvedTie bool         `json:"hasUnresolvedTie"`
	Items            []RankedItem `json:"items"`
}

// Violation describes one rejected part of a vote or menu
type Violation struct {
	Code     string `json:"code"`
	Sheet    string `json:"sheet,omitempty"`
	Category string `json:"category,omitempty"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// Error response

type ErrorResponse struct {
	Error      string      `json:"error"`
	Message    string      `json:"message,omitempty"`
	Violations []Violation `json:"violations,omitempty"`
}
