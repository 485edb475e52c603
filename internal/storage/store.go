package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/chalbik/internal/experiment"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// ReportMetadata describes a saved bench run.
type ReportMetadata struct {
	ID         string             `json:"id"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Width      int                `json:"width"`
	Height     int                `json:"height"`
	Frames     int                `json:"frames"`
	IntervalMs float64            `json:"interval_ms"`
	Speed      string             `json:"speed"`
	TailLength string             `json:"tail_length"`
	Charset    string             `json:"charset"`
	WallMs     float64            `json:"wall_ms"`
	Metrics    map[string]float64 `json:"metrics"`
}

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

var framesHeader = []string{"frame", "elapsed_ms", "lit", "active", "compose_us"}

// Save writes meta and the per-frame samples under a new report directory.
// ID and Timestamp are filled in.
func (s *Store) Save(meta ReportMetadata, result *experiment.Result) (string, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("bench_%dx%d_%d", meta.Width, meta.Height, now.UnixNano())
	meta.Timestamp = now
	meta.WallMs = float64(result.Wall.Microseconds()) / 1000
	meta.Metrics = result.Metrics

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(framesHeader); err != nil {
		return "", err
	}
	for _, smp := range result.Samples {
		row := []string{
			strconv.Itoa(smp.Frame),
			strconv.FormatFloat(float64(smp.Elapsed.Microseconds())/1000, 'f', 3, 64),
			strconv.Itoa(smp.Lit),
			strconv.Itoa(smp.Active),
			strconv.FormatInt(smp.Took.Microseconds(), 10),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// List returns saved reports, oldest first. Unreadable entries are skipped.
func (s *Store) List() ([]ReportMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []ReportMetadata{}, nil
		}
		return nil, err
	}

	reports := make([]ReportMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		reports = append(reports, *meta)
	}
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Timestamp.Before(reports[j].Timestamp)
	})
	return reports, nil
}

func (s *Store) Load(id string) (*ReportMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta ReportMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadFrames reads back the per-frame samples of a report.
func (s *Store) LoadFrames(id string) ([]experiment.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []experiment.Sample{}, nil
	}

	samples := make([]experiment.Sample, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) != len(framesHeader) {
			return nil, fmt.Errorf("%s line %d: expected %d fields, got %d", framesFile, i+2, len(framesHeader), len(rec))
		}
		frame, err1 := strconv.Atoi(rec[0])
		elapsed, err2 := strconv.ParseFloat(rec[1], 64)
		lit, err3 := strconv.Atoi(rec[2])
		active, err4 := strconv.Atoi(rec[3])
		took, err5 := strconv.ParseInt(rec[4], 10, 64)
		for _, err := range []error{err1, err2, err3, err4, err5} {
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", framesFile, i+2, err)
			}
		}
		samples = append(samples, experiment.Sample{
			Frame:   frame,
			Elapsed: time.Duration(elapsed * float64(time.Millisecond)),
			Lit:     lit,
			Active:  active,
			Took:    time.Duration(took) * time.Microsecond,
		})
	}
	return samples, nil
}
