package repo

import (
	"context"

	"pbl/internal/services/notices/domain"
)

// Samples are the notices a fresh install starts with, in insertion order
var Samples = []domain.Notice{
	{
		Title:      "Welcome to PBL Season 3 - University Social Platform",
		Content:    "Welcome all students to our new university social platform! Connect with your department, share resources, and collaborate with fellow students.",
		Department: "all",
		Author:     "University Administration",
		Priority:   domain.PriorityHigh,
	},
	{
		Title:      "CSE Department - Lab Schedule Update",
		Content:    "Computer lab schedules for CSE students have been updated for this semester. Please check the department notice board for your lab timings and room allocations.",
		Department: "CSE",
		Author:     "CSE Department Head",
		Priority:   domain.PriorityMedium,
	},
	{
		Title:      "EEE Workshop on Renewable Energy Systems",
		Content:    "There will be a workshop on renewable energy systems next Friday at 3 PM in the main auditorium. All EEE students are encouraged to attend.",
		Department: "EEE",
		Author:     "EEE Department",
		Priority:   domain.PriorityMedium,
	},
}

// Seed inserts Samples when the store is empty and reports how many it added
func Seed(ctx context.Context, r Repo) (int, error) {
	n, err := r.Count(ctx)
	if err != nil || n > 0 {
		return 0, err
	}
	for i, s := range Samples {
		if _, err := r.Insert(ctx, s); err != nil {
			return i, err
		}
	}
	return len(Samples), nil
}
