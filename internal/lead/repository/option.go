package repository

import "auditor-srv/internal/model"

// Filter narrows a lead query. Zero values mean "no constraint".
type Filter struct {
	Status   model.LeadStatus
	MinScore int
}

// ListOptions carries the filter and bounds for a List call.
type ListOptions struct {
	Filter Filter
	Limit  int
}
