package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/cranesim/internal/crane"
	"github.com/san-kum/cranesim/internal/sim"
	"github.com/san-kum/cranesim/internal/units"
)

type ExportData struct {
	Model      string             `json:"model"`
	Controller string             `json:"controller"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Steps      int                `json:"steps"`
	Columns    []string           `json:"columns"`
	Times      []float64          `json:"times"`
	States     [][]float64        `json:"states"`
	Metrics    map[string]float64 `json:"metrics"`
}

func buildExport(model, controller string, dt, duration float64, result *sim.Result) ExportData {
	data := ExportData{
		Model:      model,
		Controller: controller,
		Dt:         dt,
		Duration:   duration,
		Steps:      result.StepsTaken,
		Columns:    stateColumns,
		Times:      result.Times,
		States:     make([][]float64, len(result.States)),
		Metrics:    result.Metrics,
	}

	for i, st := range result.States {
		row := []float64{
			st.Alfa, st.Beta,
			st.RailOffset, st.CartOffset, st.LiftLine,
			st.PayloadX, st.PayloadY, st.PayloadZ,
		}
		if i < len(result.Forces) {
			f := result.Forces[i]
			row = append(row, f.Rail.Value, f.Cart.Value, f.Wind.Value)
		} else {
			row = append(row, 0, 0, 0)
		}
		data.States[i] = row
	}

	return data
}

// RowsToResult rebuilds a typed result from rows in the stateColumns layout,
// for re-exporting stored runs.
func RowsToResult(states [][]float64, times []float64, metrics map[string]float64) *sim.Result {
	result := &sim.Result{
		States:  make([]crane.ModelState, 0, len(states)),
		Forces:  make([]crane.Forces, 0, len(states)),
		Times:   times,
		Metrics: metrics,
	}

	for _, row := range states {
		if len(row) < len(stateColumns) {
			continue
		}
		result.States = append(result.States, crane.ModelState{
			Alfa:       row[0],
			Beta:       row[1],
			RailOffset: row[2],
			CartOffset: row[3],
			LiftLine:   row[4],
			PayloadX:   row[5],
			PayloadY:   row[6],
			PayloadZ:   row[7],
		})
		result.Forces = append(result.Forces, crane.Forces{
			Rail: units.N(row[8]),
			Cart: units.N(row[9]),
			Wind: units.N(row[10]),
		})
	}

	result.StepsTaken = len(result.States)
	return result
}

func ExportJSON(path string, model, controller string, dt, duration float64, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return writeJSON(file, model, controller, dt, duration, result)
}

func ExportJSONStdout(model, controller string, dt, duration float64, result *sim.Result) error {
	return writeJSON(os.Stdout, model, controller, dt, duration, result)
}

func writeJSON(w io.Writer, model, controller string, dt, duration float64, result *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildExport(model, controller, dt, duration, result))
}
