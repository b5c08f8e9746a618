package order

import (
	"fmt"
	"strings"
	"time"

	"souq-be/internal/party"
	"souq-be/internal/store"
)

type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// transitions lists the allowed next states. Completed and cancelled are
// terminal.
var transitions = map[Status][]Status{
	StatusOpen:       {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s Status) CanTransition(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

// OrderProduct is a line item. It only exists inside a MerchantOrder.
type OrderProduct struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type MerchantOrder struct {
	store.Meta
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	Category          string         `json:"category"`
	Budget            float64        `json:"budget"`
	Deadline          string         `json:"deadline,omitempty"`
	Status            Status         `json:"status"`
	Merchant          party.Merchant `json:"merchant"`
	Products          []OrderProduct `json:"products,omitempty"`
	ShippingServiceID *string        `json:"shippingServiceId"`
	PublishedAt       *time.Time     `json:"publishedAt"`
}

type CreateInput struct {
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	Category          string         `json:"category"`
	Budget            float64        `json:"budget"`
	Deadline          string         `json:"deadline"`
	Merchant          party.Merchant `json:"merchant"`
	Products          []OrderProduct `json:"products"`
	ShippingServiceID *string        `json:"shippingServiceId"`
}

// UpdateInput changes the descriptive fields. Status, shipping and
// publication have their own operations.
type UpdateInput struct {
	Title       *string         `json:"title,omitempty"`
	Description *string         `json:"description,omitempty"`
	Category    *string         `json:"category,omitempty"`
	Budget      *float64        `json:"budget,omitempty"`
	Deadline    *string         `json:"deadline,omitempty"`
	Products    *[]OrderProduct `json:"products,omitempty"`
}

func (u UpdateInput) HasAnyField() bool {
	return u.Title != nil ||
		u.Description != nil ||
		u.Category != nil ||
		u.Budget != nil ||
		u.Deadline != nil ||
		u.Products != nil
}

func (u UpdateInput) apply(o *MerchantOrder) {
	if u.Title != nil {
		o.Title = strings.TrimSpace(*u.Title)
	}
	if u.Description != nil {
		o.Description = *u.Description
	}
	if u.Category != nil {
		o.Category = *u.Category
	}
	if u.Budget != nil {
		o.Budget = *u.Budget
	}
	if u.Deadline != nil {
		o.Deadline = *u.Deadline
	}
	if u.Products != nil {
		o.Products = *u.Products
	}
}

type ListOptions struct {
	Status     Status
	MerchantID string
	// Published filters on PublishedAt when set.
	Published *bool
}

// Total is the sum of the line items. It is independent of Budget.
func Total(o MerchantOrder) float64 {
	var sum float64
	for _, p := range o.Products {
		sum += p.Price * float64(p.Quantity)
	}
	return sum
}

// Quantity is the number of units across all line items.
func Quantity(o MerchantOrder) int {
	n := 0
	for _, p := range o.Products {
		n += p.Quantity
	}
	return n
}
