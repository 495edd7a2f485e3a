package export

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// maxLineSize bounds a single record line. Workspace objects can embed
// large serialized payloads, so the default bufio limit is far too small.
const maxLineSize = 64 * 1024 * 1024

// Line is one raw record line from a log file. The raw bytes are kept so
// that surviving records can be written back byte-identically.
type Line struct {
	Raw []byte
	Num int
}

// Decode unmarshals the line into v.
func (l Line) Decode(v any) error {
	dec := json.NewDecoder(bytes.NewReader(l.Raw))
	dec.UseNumber()

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("line %d: %w", l.Num, err)
	}

	return nil
}

// ReadLines loads a whole log file into memory, one Line per non-blank
// input line. Memory is bounded by the single largest log, not the whole
// export.
func ReadLines(path string) ([]Line, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var lines []Line

	num := 0
	for scanner.Scan() {
		num++

		raw := bytes.TrimRight(scanner.Bytes(), "\r")
		if len(bytes.TrimSpace(raw)) == 0 {
			continue
		}

		lines = append(lines, Line{Raw: append([]byte(nil), raw...), Num: num})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return lines, nil
}

// ReadGroupFile parses a whole-document group file.
func ReadGroupFile(path string) (*Group, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading group file %s: %w", path, err)
	}

	var g Group
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("parsing group file %s: %w", path, err)
	}

	return &g, nil
}

// LogWriter appends raw record lines to a destination log file.
type LogWriter struct {
	f *os.File
	w *bufio.Writer
}

// CreateLog creates (or truncates) a destination log file.
func CreateLog(path string) (*LogWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}

	return &LogWriter{f: f, w: bufio.NewWriter(f)}, nil
}

// WriteLine appends one record line, restoring the trailing newline.
func (lw *LogWriter) WriteLine(line Line) error {
	if _, err := lw.w.Write(line.Raw); err != nil {
		return fmt.Errorf("writing %s: %w", lw.f.Name(), err)
	}

	if err := lw.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("writing %s: %w", lw.f.Name(), err)
	}

	return nil
}

// Close flushes and closes the underlying file.
func (lw *LogWriter) Close() error {
	if err := lw.w.Flush(); err != nil {
		lw.f.Close()

		return fmt.Errorf("flushing %s: %w", lw.f.Name(), err)
	}

	if err := lw.f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", lw.f.Name(), err)
	}

	return nil
}
