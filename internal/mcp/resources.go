package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// Resource URIs
const (
	careersURI = "pathfinder://careers"
	weightsURI = "pathfinder://weights"
)

// Resource defines an MCP resource
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

// ResourceDefinitions lists all available resources
var ResourceDefinitions = []Resource{
	{
		URI:         careersURI,
		Name:        "Career Table",
		Description: "Career directions the matcher ranks, with tags, locations and salary ranges",
		MimeType:    "text/plain",
	},
	{
		URI:         weightsURI,
		Name:        "Scoring Weights",
		Description: "Default scoring weights used by the recommend tool",
		MimeType:    "application/json",
	},
}

// resourcesListResult is the response for resources/list
type resourcesListResult struct {
	Resources []Resource `json:"resources"`
}

// readResourceParams is the params for resources/read
type readResourceParams struct {
	URI string `json:"uri"`
}

// readResourceResult is the response for resources/read
type readResourceResult struct {
	Contents []resourceContent `json:"contents"`
}

type resourceContent struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
}

func (s *Server) handleReadResource(_ context.Context, uri string) (string, string, error) {
	switch uri {
	case careersURI:
		return s.careersText(), "text/plain", nil
	case weightsURI:
		data, err := json.MarshalIndent(s.planner.Weights(), "", "  ")
		if err != nil {
			return "", "", err
		}
		return string(data), "application/json", nil
	default:
		return "", "", fmt.Errorf("unknown resource: %s", uri)
	}
}

func (s *Server) careersText() string {
	table := s.planner.Careers()
	if len(table) == 0 {
		return "No careers configured."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Careers (%d)\n\n", len(table))
	for _, p := range table {
		fmt.Fprintf(&b, "- %s", p.CareerName)
		if p.IsStrategic {
			fmt.Fprintf(&b, " [strategic: %s]", p.StrategicField)
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "  tags: %s\n", strings.Join(p.Tags, ", "))
		if p.Unrestricted() {
			b.WriteString("  locations: 全国\n")
		} else {
			fmt.Fprintf(&b, "  locations: %s\n", strings.Join(p.AllowedLocations, ", "))
		}
		if p.SalaryRange != "" {
			fmt.Fprintf(&b, "  salary: %s\n", p.SalaryRange)
		}
		if len(p.Skills) > 0 {
			fmt.Fprintf(&b, "  skills: %s\n", strings.Join(p.Skills, ", "))
		}
	}
	return b.String()
}
