// Package universalrobots provides the Universal Robots arm family: link geometries for the UR3, UR5,
// UR5e and UR10, solvers built from them, and URScript commands to drive the controller.
package universalrobots

import (
	"embed"
	"encoding/json"
	"path"
	"strings"

	"github.com/pkg/errors"

	"go.viam.com/urkin/kinematics"
	"go.viam.com/urkin/logging"
)

//go:embed geometry/*.json
var geometryFiles embed.FS

// Models lists the arm models whose geometry ships with this package.
var Models []string

func init() {
	entries, err := geometryFiles.ReadDir("geometry")
	if err != nil {
		panic(err)
	}
	for _, entry := range entries {
		model := strings.TrimSuffix(entry.Name(), path.Ext(entry.Name()))
		g, err := readGeometry(path.Join("geometry", entry.Name()))
		if err != nil {
			panic(errors.Wrapf(err, "bad geometry for %q", model))
		}
		kinematics.RegisterGeometry(model, g)
		Models = append(Models, model)
	}
}

func readGeometry(name string) (kinematics.LinkGeometry, error) {
	var g kinematics.LinkGeometry
	data, err := geometryFiles.ReadFile(name)
	if err != nil {
		return g, err
	}
	err = json.Unmarshal(data, &g)
	return g, err
}

// MakeSolver returns a solver for one of the bundled models using the default envelope.
func MakeSolver(model string, logger logging.Logger) (*kinematics.Solver, error) {
	return kinematics.NewSolverFromConfig(&kinematics.Config{Model: model}, logger)
}
