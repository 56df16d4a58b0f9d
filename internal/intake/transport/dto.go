package transport

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"tradein_backend/internal/handoff"
)

// SubmitDesignRequest is the multipart form for a design generation
// submission. Door counts bind as strings because browser forms send them
// that way; garbage and negative values coerce to zero instead of failing
// the bind.
type SubmitDesignRequest struct {
	Phone       string `form:"phone" validate:"required"`
	Email       string `form:"email" validate:"required,email"`
	Doors       string `form:"doors"`
	SingleDoors string `form:"singleDoors"`
	DoubleDoors string `form:"doubleDoors"`
	Material    string `form:"material" validate:"omitempty,doormaterial"`

	// Design-picker variant: JSON-encoded selection, plus a designImage file
	// part handled outside the struct bind.
	NewDoorDesign string `form:"newDoorDesign"`
	NewDoorColor  string `form:"newDoorColor"`
}

// DoorDesignRef is the design-picker selection.
type DoorDesignRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

// DoorColorRef is the picked door color.
type DoorColorRef struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// ParseCount coerces a form count field to a non-negative integer.
func ParseCount(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// DesignRef parses the JSON-encoded design selection, nil when absent.
func (r SubmitDesignRequest) DesignRef() (*DoorDesignRef, error) {
	if strings.TrimSpace(r.NewDoorDesign) == "" {
		return nil, nil
	}
	var ref DoorDesignRef
	if err := json.Unmarshal([]byte(r.NewDoorDesign), &ref); err != nil {
		return nil, fmt.Errorf("parse newDoorDesign: %w", err)
	}
	return &ref, nil
}

// ColorRef parses the JSON-encoded color selection, nil when absent.
func (r SubmitDesignRequest) ColorRef() (*DoorColorRef, error) {
	if strings.TrimSpace(r.NewDoorColor) == "" {
		return nil, nil
	}
	var ref DoorColorRef
	if err := json.Unmarshal([]byte(r.NewDoorColor), &ref); err != nil {
		return nil, fmt.Errorf("parse newDoorColor: %w", err)
	}
	return &ref, nil
}

// SubmitDesignResponse echoes the generated preview and a handoff token the
// offer step redeems.
type SubmitDesignResponse struct {
	Success           bool           `json:"success"`
	Token             string         `json:"token"`
	ImageData         string         `json:"imageData"`
	OriginalImageData string         `json:"originalImageData,omitempty"`
	Intake            handoff.Intake `json:"intake"`
}
