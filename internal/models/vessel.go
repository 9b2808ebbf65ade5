package models

import "time"

type Vessel struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	IMO        string    `json:"imo,omitempty"`
	VesselType string    `json:"vessel_type,omitempty"`
	Flag       string    `json:"flag,omitempty"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
