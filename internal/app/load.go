package app

import (
	"time"

	"github.com/alexanderramin/portfolio/internal/domain"
	"github.com/alexanderramin/portfolio/internal/workload"
)

// DefaultOverloadThreshold is the 100% capacity line.
const DefaultOverloadThreshold = 100.0

type LoadRequest struct {
	InitiativeID string
	Owner        string
	Unit         domain.GroupUnit
	From         *time.Time
	To           *time.Time
	Rolling      bool
	Threshold    float64
}

func NewLoadRequest() LoadRequest {
	return LoadRequest{
		Unit:      domain.GroupWeek,
		Threshold: DefaultOverloadThreshold,
	}
}

type BucketLoad struct {
	Bucket     workload.Bucket
	Own        float64
	Other      float64
	Total      float64
	Overloaded bool
}

type LoadResponse struct {
	InitiativeID     string
	Owner            string
	Unit             domain.GroupUnit
	Threshold        float64
	Buckets          []BucketLoad
	OverloadedCount  int
	OtherInitiatives int
}

type HeatmapRequest struct {
	Unit      domain.GroupUnit
	From      *time.Time
	To        *time.Time
	Rolling   bool
	Threshold float64
}

func NewHeatmapRequest() HeatmapRequest {
	return HeatmapRequest{
		Unit:      domain.GroupWeek,
		Threshold: DefaultOverloadThreshold,
	}
}

type HeatmapResponse struct {
	Unit        domain.GroupUnit
	Threshold   float64
	Buckets     []workload.Bucket
	Rows        []workload.OwnerRow
	Initiatives int
}

// LoadErrorCode classifies request errors for the load use cases.
type LoadErrorCode string

const (
	LoadErrInvalidUnit  LoadErrorCode = "INVALID_UNIT"
	LoadErrInvalidRange LoadErrorCode = "INVALID_RANGE"
	LoadErrMissingOwner LoadErrorCode = "MISSING_OWNER"
)

type LoadError struct {
	Code    LoadErrorCode
	Message string
}

func (e *LoadError) Error() string {
	return string(e.Code) + ": " + e.Message
}
