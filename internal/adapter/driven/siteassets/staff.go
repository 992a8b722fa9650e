// Package siteassets implements the PartialSource and StaffSource ports over a
// local site directory and over a remote static host.
package siteassets

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ericfisherdev/gagesite/internal/domain/model"
)

// staffJSON is one entry of assets/data/staff.json. Missing and null fields
// decode as empty strings.
type staffJSON struct {
	Name       string `json:"name"`
	Department string `json:"department"`
	Role       string `json:"role"`
	Email      string `json:"email"`
	Photo      string `json:"photo"`
}

var errNullStaffList = errors.New("staff list is null")

// decodeStaff decodes a staff list. A null list or a null entry is an error.
func decodeStaff(r io.Reader) ([]model.StaffRecord, error) {
	var entries []*staffJSON
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode staff list: %w", err)
	}
	if entries == nil {
		return nil, fmt.Errorf("decode staff list: %w", errNullStaffList)
	}

	records := make([]model.StaffRecord, 0, len(entries))
	for i, e := range entries {
		if e == nil {
			return nil, fmt.Errorf("decode staff list: entry %d is null", i)
		}
		records = append(records, model.StaffRecord{
			Name:       e.Name,
			Department: e.Department,
			Role:       e.Role,
			Email:      strings.TrimSpace(e.Email),
			Photo:      strings.TrimSpace(e.Photo),
		})
	}
	return records, nil
}

func isAbsoluteURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}
