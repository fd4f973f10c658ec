package model

import (
	"strings"
	"time"
)

type BookStatus string

const (
	BookAvailable BookStatus = "available"
	BookLoaned    BookStatus = "loaned"
	BookReserved  BookStatus = "reserved"
)

func (s BookStatus) Valid() bool {
	switch s {
	case BookAvailable, BookLoaned, BookReserved:
		return true
	}
	return false
}

type LoanStatus string

const (
	LoanActive   LoanStatus = "active"
	LoanReturned LoanStatus = "returned"
	LoanOverdue  LoanStatus = "overdue"
)

// Open reports whether the loan still holds its book.
func (s LoanStatus) Open() bool {
	return s == LoanActive || s == LoanOverdue
}

type Book struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title" validate:"required"`
	Author      string     `json:"author" yaml:"author" validate:"required"`
	ISBN        string     `json:"isbn" yaml:"isbn"`
	Category    string     `json:"category" yaml:"category"`
	Tags        []string   `json:"tags" yaml:"tags"`
	Status      BookStatus `json:"status" yaml:"status"`
	Description string     `json:"description" yaml:"description"`
	CoverURL    string     `json:"coverUrl" yaml:"coverUrl"`
	PublishYear int        `json:"publishYear" yaml:"publishYear"`
	Shelf       string     `json:"shelf" yaml:"shelf" validate:"required"`
}

// NewBook is the registration form for a catalog entry.
type NewBook struct {
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	ISBN        string   `json:"isbn"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Shelf       string   `json:"shelf"`
	Description string   `json:"description"`
	CoverURL    string   `json:"coverUrl"`
	PublishYear int      `json:"publishYear"`
}

const (
	DefaultCategory = "Fiction"
	DefaultCoverURL = "https://images.unsplash.com/photo-1543004471-240ce4775d3b?auto=format&fit=crop&q=80&w=400"
)

// NormalizeTags trims every tag and drops the empty ones, keeping order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// ParseTags splits a comma separated tag list.
func ParseTags(s string) []string {
	return NormalizeTags(strings.Split(s, ","))
}

type Loan struct {
	ID            string     `json:"id" yaml:"id"`
	BookID        string     `json:"bookId" yaml:"bookId"`
	BorrowerName  string     `json:"borrowerName" yaml:"borrowerName"`
	BorrowerPhone string     `json:"borrowerPhone" yaml:"borrowerPhone"`
	LoanDate      Date       `json:"loanDate" yaml:"loanDate"`
	DueDate       Date       `json:"dueDate" yaml:"dueDate"`
	Status        LoanStatus `json:"status" yaml:"status"`
}

type CheckOutRequest struct {
	BookID        string `json:"-" validate:"required"`
	BorrowerName  string `json:"borrowerName"`
	BorrowerPhone string `json:"borrowerPhone" validate:"phone10"`
	DueDate       Date   `json:"dueDate"`
}

type RenewRequest struct {
	Days int `json:"days"`
}

// LoanDetails is a loan joined with the book it holds, as shown in the lending log.
type LoanDetails struct {
	Loan      `json:",inline"`
	BookTitle string `json:"bookTitle"`
	Shelf     string `json:"shelf"`
	CoverURL  string `json:"coverUrl"`
}

type CategoryCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type Dashboard struct {
	RegisteredItems int             `json:"registeredItems"`
	CheckedOut      int             `json:"checkedOut"`
	OverdueReturns  int             `json:"overdueReturns"`
	AvailableStock  int             `json:"availableStock"`
	Categories      []CategoryCount `json:"categories"`
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Analysis is the structured description of a book. The zero value is the empty object.
type Analysis struct {
	Genre           string   `json:"genre,omitempty"`
	Summary         string   `json:"summary,omitempty"`
	ReadingLevel    string   `json:"readingLevel,omitempty"`
	PotentialThemes []string `json:"potentialThemes,omitempty"`
}

// Loan policy. The due date window is a presentation guardrail for new loans only.
const (
	MinLoanDays = 1
	MaxLoanDays = 14
)

var RenewalOptions = []int{3, 5, 8}

// DueDateWindow returns the earliest and latest due dates allowed for a loan made on today.
func DueDateWindow(today Date) (earliest, latest Date) {
	return today.AddDays(MinLoanDays), today.AddDays(MaxLoanDays)
}

// Today returns the calendar date of t in UTC.
func Today(t time.Time) Date {
	return NewDate(t)
}

// CategoryAll matches every category.
const CategoryAll = "All"

// StatusFilter selects books by status. The zero value is AnyStatus.
type StatusFilter struct {
	status BookStatus
}

var AnyStatus = StatusFilter{}

func OnlyStatus(s BookStatus) StatusFilter {
	return StatusFilter{status: s}
}

func (f StatusFilter) Any() bool {
	return f.status == ""
}

func (f StatusFilter) Match(s BookStatus) bool {
	return f.Any() || f.status == s
}

func (f StatusFilter) String() string {
	if f.Any() {
		return CategoryAll
	}
	return string(f.status)
}

// ParseStatusFilter accepts "", "All" or a book status.
func ParseStatusFilter(s string) (StatusFilter, bool) {
	if s == "" || strings.EqualFold(s, CategoryAll) {
		return AnyStatus, true
	}
	st := BookStatus(strings.ToLower(s))
	if !st.Valid() {
		return AnyStatus, false
	}
	return OnlyStatus(st), true
}

type SortMode int

const (
	SortNone SortMode = iota
	SortShelfAsc
	SortYearDesc
	SortYearAsc
)

var sortModeNames = map[SortMode]string{
	SortNone:     "none",
	SortShelfAsc: "shelf-asc",
	SortYearDesc: "year-desc",
	SortYearAsc:  "year-asc",
}

func (m SortMode) String() string {
	if name, ok := sortModeNames[m]; ok {
		return name
	}
	return sortModeNames[SortNone]
}

// ParseSortMode maps unknown modes to SortNone.
func ParseSortMode(s string) SortMode {
	for mode, name := range sortModeNames {
		if name == s {
			return mode
		}
	}
	return SortNone
}
