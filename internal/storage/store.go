package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/cranesim/internal/sim"
)

// stateColumns is the CSV layout after the time column.
var stateColumns = []string{
	"alfa", "beta", "rail", "cart", "line", "px", "py", "pz",
	"f_rail", "f_cart", "f_wind",
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Model      string             `json:"model"`
	Timestamp  time.Time          `json:"timestamp"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Controller string             `json:"controller"`
	Steps      int                `json:"steps"`
	Metrics    map[string]float64 `json:"metrics"`
}

func (s *Store) Save(model string, dt, duration float64, controller string, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", model, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Model:      model,
		Timestamp:  time.Now(),
		Dt:         dt,
		Duration:   duration,
		Controller: controller,
		Steps:      result.StepsTaken,
		Metrics:    result.Metrics,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "states.csv")
	if err := WriteCSV(csvPath, result); err != nil {
		return "", err
	}

	return runID, nil
}

// WriteCSV writes the trajectory in the run-directory column layout. It is
// also used directly by the export-csv command.
func WriteCSV(path string, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	header := append([]string{"time"}, stateColumns...)
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range result.States {
		st := result.States[i]
		row := []string{
			strconv.FormatFloat(result.Times[i], 'f', 6, 64),
			strconv.FormatFloat(st.Alfa, 'f', 6, 64),
			strconv.FormatFloat(st.Beta, 'f', 6, 64),
			strconv.FormatFloat(st.RailOffset, 'f', 6, 64),
			strconv.FormatFloat(st.CartOffset, 'f', 6, 64),
			strconv.FormatFloat(st.LiftLine, 'f', 6, 64),
			strconv.FormatFloat(st.PayloadX, 'f', 6, 64),
			strconv.FormatFloat(st.PayloadY, 'f', 6, 64),
			strconv.FormatFloat(st.PayloadZ, 'f', 6, 64),
		}

		if i < len(result.Forces) {
			f := result.Forces[i]
			row = append(row,
				strconv.FormatFloat(f.Rail.Value, 'f', 6, 64),
				strconv.FormatFloat(f.Cart.Value, 'f', 6, 64),
				strconv.FormatFloat(f.Wind.Value, 'f', 6, 64))
		} else {
			row = append(row, "0", "0", "0")
		}

		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadStates reads a run's trajectory back. Columns follow stateColumns;
// the returned header includes the leading time column.
func (s *Store) LoadStates(runID string) ([]string, [][]float64, []float64, error) {
	csvPath := filepath.Join(s.baseDir, runID, "states.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, nil, err
	}

	if len(records) < 1 {
		return nil, [][]float64{}, []float64{}, nil
	}

	header := records[0]
	times := make([]float64, 0, len(records)-1)
	states := make([][]float64, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) == 0 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		times = append(times, t)

		state := make([]float64, 0, len(record)-1)
		for j := 1; j < len(record); j++ {
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				continue
			}
			state = append(state, val)
		}
		states = append(states, state)
	}

	return header, states, times, nil
}
