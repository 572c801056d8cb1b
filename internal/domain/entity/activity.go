package entity

import "time"

// ActivityKind describes what a field agent is currently doing.
type ActivityKind string

const (
	ActivityIdle       ActivityKind = "idle"
	ActivityAttendance ActivityKind = "attendance"
	ActivityProspect   ActivityKind = "prospect"
	ActivityVisit      ActivityKind = "visit"
)

// ActivityContext is the enrichment attached to a relayed location ping.
type ActivityContext struct {
	UserID               string       `json:"userId"`
	UserName             string       `json:"userName,omitempty"`
	ActivityID           string       `json:"activityId,omitempty"`
	Kind                 ActivityKind `json:"kind"`
	Description          string       `json:"description,omitempty"`
	ClientID             string       `json:"clientId,omitempty"`
	ClientName           string       `json:"clientName,omitempty"`
	StartedAt            *time.Time   `json:"startedAt,omitempty"`
	SiteLatitude         *float64     `json:"-"`
	SiteLongitude        *float64     `json:"-"`
	DistanceToSiteMeters *float64     `json:"distanceToSiteMeters,omitempty"`
}

// HasSite reports whether the activity carries a site position.
func (c *ActivityContext) HasSite() bool {
	return c != nil && c.SiteLatitude != nil && c.SiteLongitude != nil
}
