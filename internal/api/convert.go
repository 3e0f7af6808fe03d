package api

import (
	"time"

	"slaved/internal/registry"
)

// FromFramework converts a registry row into its wire representation.
func FromFramework(fw *registry.Framework) Framework {
	if fw == nil {
		return Framework{}
	}
	return Framework{
		ID:           fw.ID,
		Name:         fw.Name,
		Executor:     fw.Executor,
		Status:       string(fw.Status),
		RegisteredAt: formatTime(fw.RegisteredAt),
		UpdatedAt:    formatTime(fw.UpdatedAt),
	}
}

// FromFrameworks converts a registry listing, keeping order.
func FromFrameworks(frameworks []*registry.Framework) []Framework {
	if len(frameworks) == 0 {
		return nil
	}
	out := make([]Framework, 0, len(frameworks))
	for _, fw := range frameworks {
		out = append(out, FromFramework(fw))
	}
	return out
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
