package hospital

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/carebridge/hms-gateway/internal/domain/entities"
)

// SetAvailability creates or replaces a doctor's weekly schedule
func (c *Client) SetAvailability(ctx context.Context, availability entities.Availability) error {
	return c.doJSON(ctx, http.MethodPost, "/availability", nil, availability, nil)
}

// GetAvailability returns a doctor's weekly schedule
func (c *Client) GetAvailability(ctx context.Context, doctorID int64) (*entities.Availability, error) {
	var availability entities.Availability
	path := fmt.Sprintf("/availability/doctor/%d", doctorID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &availability); err != nil {
		return nil, err
	}
	return &availability, nil
}

// HasAvailability reports whether a doctor has set up a schedule yet
func (c *Client) HasAvailability(ctx context.Context, doctorID int64) (bool, error) {
	var exists bool
	path := fmt.Sprintf("/availability/doctor/%d/exists", doctorID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ListDaySlots returns every half-hour slot for a doctor on a date,
// each tagged available or booked. The date is "2006-01-02".
func (c *Client) ListDaySlots(ctx context.Context, doctorID int64, date string) ([]entities.Slot, error) {
	var slots []entities.Slot
	query := url.Values{
		"doctorId": {strconv.FormatInt(doctorID, 10)},
		"date":     {date},
	}
	if err := c.doJSON(ctx, http.MethodGet, "/availability/full", query, nil, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}
