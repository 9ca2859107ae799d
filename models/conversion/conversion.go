package conversion

import (
	"time"

	c "note/api/models/constants"

	"github.com/google/uuid"
)

const (
	Queued  c.ConversionState = "Queued"
	Running c.ConversionState = "Running"
	Done    c.ConversionState = "Done"
	Error   c.ConversionState = "Error"
)

type ConversionRequest struct {
	Id             uuid.UUID         `json:"id"`
	Filename       string            `json:"filename"`
	OutputFilename string            `json:"outputFilename"`
	Index          bool              `json:"index"`
	State          c.ConversionState `json:"state"`
	Message        string            `json:"message"`
	RecordCount    int               `json:"recordCount"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// IsFinished reports whether the request reached a terminal state.
func (r ConversionRequest) IsFinished() bool {
	return r.State == Done || r.State == Error
}

type ConversionResponseDTO struct {
	Id       uuid.UUID         `json:"id"`
	Filename string            `json:"filename"`
	State    c.ConversionState `json:"state"`
	Message  string            `json:"message"`
}
