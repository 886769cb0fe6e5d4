package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

const sampleCampus = `kind: campus
locations:
  - { id: gate, name: Main Gate, type: facility }
  - { id: quad, name: Quad, type: intersection }
  - { id: admin, name: Admin Building, type: building, room_numbers: ["A101", "A201"], floors: [0, 1, 2] }
connections:
  - { from: gate, to: quad, distance: 120, type: path, bidirectional: true }
  - { from: quad, to: admin, distance: 80, type: path, bidirectional: true, facility_name: Cafe }
lectures:
  - { id: intro, subject_name: Programming, lecture_name: Intro, room_number: "A201", building_id: admin, floor: 2 }
`

const sampleBuilding = `kind: building
id: admin
name: Admin Building
floors:
  - number: 0
    points:
      - { id: admin-entrance, label: Main Entrance, type: entrance }
      - { id: admin-stairs-0, label: Main Stairs, type: stairs }
    connections:
      - { from: admin-entrance, to: admin-stairs-0, weight: 20 }
  - number: 1
    points:
      - { id: admin-stairs-1, label: Main Stairs, type: stairs }
      - { id: admin-101, label: A101, type: room, room_number: "A101" }
    connections:
      - { from: admin-stairs-1, to: admin-101, weight: 15 }
  - number: 2
    points:
      - { id: admin-stairs-2, label: Main Stairs, type: stairs }
      - { id: admin-201, label: A201, type: room, room_number: "A201" }
    connections:
      - { from: admin-stairs-2, to: admin-201, weight: 12 }
`

func initCmd() *cobra.Command {
	var projectName string
	var dsn string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a new wayfinder project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(projectName) == "" {
				return fmt.Errorf("--name is required")
			}
			return runInit(projectName, dsn)
		},
	}
	cmd.Flags().StringVar(&projectName, "name", "", "Project name")
	cmd.Flags().StringVar(&dsn, "dsn", "sqlite://./wayfinder.db", "Database DSN (sqlite:// or postgres://)")
	return cmd
}

func runInit(projectName, dsn string) error {
	campusPath := filepath.Join("maps", "campus.yaml")
	buildingPath := filepath.Join("maps", "buildings", "admin.yaml")
	for _, path := range []string{configPath, campusPath, buildingPath} {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(buildingPath), 0o755); err != nil {
		return fmt.Errorf("creating maps directory: %w", err)
	}

	configContents := fmt.Sprintf("project: %s\nversion: 1\n\ndatabase:\n  dsn: %s\n\nsources:\n  - name: campus\n    paths:\n      - ./maps/\n\nexclude:\n  - ./maps/drafts/\n\nrouting:\n  transit_selection: hops\n  missing_connector: fail\n\nserver:\n  addr: \":8080\"\n\nlog:\n  level: info\n", projectName, dsn)
	if err := os.WriteFile(configPath, []byte(configContents), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", configPath, err)
	}
	if err := os.WriteFile(campusPath, []byte(sampleCampus), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", campusPath, err)
	}
	if err := os.WriteFile(buildingPath, []byte(sampleBuilding), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", buildingPath, err)
	}

	return nil
}
