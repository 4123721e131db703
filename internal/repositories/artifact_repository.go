package repositories

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alimgiray/repodigest/internal/models"
)

const (
	RawDataFileName = "raw_data.json"

	rawDataStem     = "raw_data"
	preparedDefault = "analysis_ready"
	preparedSuffix  = "_analysis_ready"
	renderedSuffix  = "_for_llm"
)

// ArtifactRepository persists stage outputs as whole files under a base directory
type ArtifactRepository struct {
	baseDir string
}

func NewArtifactRepository(baseDir string) *ArtifactRepository {
	return &ArtifactRepository{baseDir: baseDir}
}

// RawDataPath returns {baseDir}/{owner}_{repo}/raw_data.json
func (r *ArtifactRepository) RawDataPath(ref models.RepositoryRef) string {
	return filepath.Join(r.baseDir, ref.Slug(), RawDataFileName)
}

// PreparedPath derives the reduced JSON path from a raw JSON path:
// raw_data.json -> analysis_ready.json, anything else -> <stem>_analysis_ready.json
func PreparedPath(rawPath string) string {
	stem := fileStem(rawPath)
	name := stem + preparedSuffix
	if stem == rawDataStem {
		name = preparedDefault
	}
	return filepath.Join(filepath.Dir(rawPath), name+".json")
}

// RenderedPath derives <stem>_for_llm.md next to the reduced JSON
func RenderedPath(preparedPath string) string {
	return filepath.Join(filepath.Dir(preparedPath), fileStem(preparedPath)+renderedSuffix+".md")
}

// WorkbookPath derives <stem>.xlsx next to the reduced JSON
func WorkbookPath(preparedPath string) string {
	return filepath.Join(filepath.Dir(preparedPath), fileStem(preparedPath)+".xlsx")
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// SaveJSON writes v as indented JSON. HTML characters are not escaped so bodies stay readable.
func (r *ArtifactRepository) SaveJSON(path string, v interface{}) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return r.Save(path, func(w io.Writer) error {
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// LoadJSON reads path into v
func (r *ArtifactRepository) LoadJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// SaveText writes content as-is
func (r *ArtifactRepository) SaveText(path, content string) error {
	return r.Save(path, func(w io.Writer) error {
		_, err := io.WriteString(w, content)
		return err
	})
}

// Save creates the parent directory, streams write into a temp file and renames it
// into place. If write fails nothing is left at path.
func (r *ArtifactRepository) Save(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output folder %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := write(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
