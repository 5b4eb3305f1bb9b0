package portal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// AttendanceReport is one unit's sacrament meeting attendance for a month.
type AttendanceReport struct {
	Unit    string  `json:"unit"`
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Average float64 `json:"average"`
	Weeks   []int   `json:"weeks"`
}

// Attendance fetches the attendance figures of one unit for a month.
func (c *Client) Attendance(ctx context.Context, unit string, year int, month time.Month) (*AttendanceReport, error) {
	query := url.Values{}
	query.Set("unit", unit)
	query.Set("year", strconv.Itoa(year))
	query.Set("month", strconv.Itoa(int(month)))

	body, err := c.doRequest(ctx, "/api/v1/attendance", query)
	if err != nil {
		return nil, err
	}

	var report AttendanceReport
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, fmt.Errorf("decode attendance response: %w", err)
	}
	return &report, nil
}
